package browser

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "https url",
			url:     "https://docs.cursor.com/composer",
			wantErr: false,
		},
		{
			name:    "http url",
			url:     "http://example.com",
			wantErr: false,
		},
		{
			name:    "url with fragment",
			url:     "https://example.com/page#section",
			wantErr: false,
		},
		{
			name:    "file scheme",
			url:     "file:///etc/passwd",
			wantErr: true,
		},
		{
			name:    "custom scheme",
			url:     "obsidian://open?vault=x",
			wantErr: true,
		},
		{
			name:    "scheme only",
			url:     "https://",
			wantErr: true,
		},
		{
			name:    "plain text",
			url:     "not a url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
