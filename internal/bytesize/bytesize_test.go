package bytesize

import (
	"testing"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"plain zero", "0", 0, false},
		{"plain bytes", "4096", 4096, false},
		{"bytes suffix", "512B", 512, false},

		{"kibibytes", "64Ki", 64 * KiB, false},
		{"mebibytes", "256MiB", 256 * MiB, false},
		{"gibibytes", "2Gi", 2 * GiB, false},
		{"tebibytes", "1TiB", TiB, false},

		{"kilobytes", "10KB", 10 * KB, false},
		{"megabytes", "100M", 100 * MB, false},
		{"gigabytes", "1GB", GB, false},

		{"case insensitive", "64mi", 64 * MiB, false},
		{"whitespace", "  1 Gi  ", GiB, false},
		{"fractional", "1.5Mi", ByteSize(1.5 * float64(MiB)), false},

		{"empty string", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"unknown unit", "1Xi", 0, true},
		{"negative", "-1Gi", 0, true},
		{"no number", "Gi", 0, true},
		{"overflow", "99999999Ti", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseByteSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_TextRoundTrip(t *testing.T) {
	tests := []struct {
		in   ByteSize
		want string
	}{
		{0, "0"},
		{1000, "1000"},
		{2 * KiB, "2KiB"},
		{64 * MiB, "64MiB"},
		{3 * GiB, "3GiB"},
		{MiB + 1, "1048577"},
		{1536 * KiB, "1536KiB"},
	}

	for _, tt := range tests {
		text, err := tt.in.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", tt.in, err)
		}
		if string(text) != tt.want {
			t.Errorf("MarshalText(%d) = %q, want %q", tt.in, text, tt.want)
		}

		var back ByteSize
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != tt.in {
			t.Errorf("round trip of %d gave %d", tt.in, back)
		}
	}
}

func TestByteSize_String(t *testing.T) {
	tests := []struct {
		input ByteSize
		want  string
	}{
		{512, "512B"},
		{2 * KiB, "2.00KiB"},
		{100 * MiB, "100.00MiB"},
		{ByteSize(1.5 * float64(GiB)), "1.50GiB"},
		{2 * TiB, "2.00TiB"},
	}

	for _, tt := range tests {
		if got := tt.input.String(); got != tt.want {
			t.Errorf("ByteSize(%d).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := (64 * MiB).Uint64(); got != 64<<20 {
		t.Errorf("Uint64() = %d", got)
	}
}
