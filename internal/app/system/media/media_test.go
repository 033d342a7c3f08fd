package media

import "testing"

func TestCheckFormat(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png"}

	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"screenshot.png", false},
		{"photo.JPG", false},
		{"proof.jpeg", false},
		{"invoice.pdf", true},
		{"noext", true},
		{"archive.tar.gz", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := CheckFormat(tt.filename, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckFormat(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestUniquePublicID_SanitizesStem(t *testing.T) {
	id := uniquePublicID("my payment proof!.png")
	if len(id) < 9 {
		t.Fatalf("unexpectedly short public id %q", id)
	}
	for _, c := range id[9:] {
		ok := c == '-' || c == '_' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			t.Errorf("public id contains unexpected char %q: %q", c, id)
		}
	}
}
