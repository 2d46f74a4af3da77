package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FACEBOOK_ACCESS_TOKEN", "")
	t.Setenv("FACEBOOK_API_VERSION", "")
	t.Setenv("INSTAGRAM_GRAPH_URL", "")
	t.Setenv("TIKTOK_API_BASE_URL", "")

	cfg := LoadConfig()

	if cfg.FacebookAPIVersion != "v24.0" {
		t.Errorf("FacebookAPIVersion = %q, want v24.0", cfg.FacebookAPIVersion)
	}
	if cfg.FacebookAccessToken != "" {
		t.Errorf("FacebookAccessToken = %q, want empty", cfg.FacebookAccessToken)
	}
	if cfg.TiktokAPIBaseURL != "https://open.tiktokapis.com" {
		t.Errorf("TiktokAPIBaseURL = %q", cfg.TiktokAPIBaseURL)
	}
	if got := cfg.FacebookGraphURL(); got != "https://graph.facebook.com/v24.0" {
		t.Errorf("FacebookGraphURL() = %q", got)
	}
}

func TestValidateFacebook(t *testing.T) {
	tests := []struct {
		name  string
		token string
		page  string
		want  bool
	}{
		{"both set", "tok", "page1", true},
		{"missing token", "", "page1", false},
		{"missing page", "tok", "", false},
		{"both missing", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{FacebookAccessToken: tt.token, FacebookPageID: tt.page}
			if got := cfg.ValidateFacebook(); got != tt.want {
				t.Errorf("ValidateFacebook() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstagramTokenFallback(t *testing.T) {
	cfg := &Config{FacebookAccessToken: "fb-tok"}
	if got := cfg.InstagramToken(); got != "fb-tok" {
		t.Errorf("InstagramToken() = %q, want facebook fallback", got)
	}
	if !cfg.IsInstagramUsingFacebookLogin() {
		t.Error("IsInstagramUsingFacebookLogin() = false, want true")
	}

	cfg.InstagramAccessToken = "ig-tok"
	if got := cfg.InstagramToken(); got != "ig-tok" {
		t.Errorf("InstagramToken() = %q, want dedicated token", got)
	}
	if cfg.IsInstagramUsingFacebookLogin() {
		t.Error("IsInstagramUsingFacebookLogin() = true, want false")
	}
}

func TestValidateInstagram(t *testing.T) {
	cfg := &Config{FacebookAccessToken: "fb-tok", InstagramUserID: "17841400000000000"}
	if !cfg.ValidateInstagram() {
		t.Error("ValidateInstagram() = false with facebook token fallback, want true")
	}

	cfg = &Config{InstagramAccessToken: "ig-tok"}
	if cfg.ValidateInstagram() {
		t.Error("ValidateInstagram() = true without user id, want false")
	}
}

func TestInstagramAPIURL(t *testing.T) {
	cfg := &Config{FacebookAPIVersion: "v24.0"}
	if got := cfg.InstagramAPIURL(); got != "https://graph.facebook.com/v24.0" {
		t.Errorf("InstagramAPIURL() = %q", got)
	}

	cfg.InstagramAPIVersion = "v23.0"
	if got := cfg.InstagramAPIURL(); got != "https://graph.facebook.com/v23.0" {
		t.Errorf("InstagramAPIURL() with version override = %q", got)
	}

	cfg.InstagramGraphURL = "https://graph.instagram.com/v24.0"
	if got := cfg.InstagramAPIURL(); got != "https://graph.instagram.com/v24.0" {
		t.Errorf("InstagramAPIURL() with url override = %q", got)
	}
}
