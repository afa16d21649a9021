package rewrite

import (
	"errors"
	"testing"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want string
	}{
		{
			name: "already clean",
			src:  "print(\"hello\")\n",
			want: "print(\"hello\")\n",
		},
		{
			name: "missing final newline",
			src:  "x = 1",
			want: "x = 1\n",
		},
		{
			name: "trailing whitespace stripped",
			src:  "x = 1   \ny = 2\t\n",
			want: "x = 1\ny = 2\n",
		},
		{
			name: "crlf normalized",
			src:  "x = 1\r\ny = 2\r\n",
			want: "x = 1\ny = 2\n",
		},
		{
			name: "extra trailing newlines collapsed",
			src:  "x = 1\n\n\n",
			want: "x = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rewrite(tt.src, tt.opts)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Rewrite() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteInvalidSource(t *testing.T) {
	for _, src := range []string{
		"def broken(:\n",
		"if True\n    pass\n",
		"x = (1\n",
	} {
		_, err := Rewrite(src, Options{})
		var inv *InvalidSourceError
		if !errors.As(err, &inv) {
			t.Errorf("Rewrite(%q) error = %v, want InvalidSourceError", src, err)
		}
	}
}
