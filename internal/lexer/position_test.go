package lexer

import "testing"

func TestPosition_String(t *testing.T) {
	p := Position{Filename: "main.fis", Line: 12, Column: 3}
	if got := p.String(); got != "main.fis:12:3" {
		t.Errorf("Position.String() = %q, want %q", got, "main.fis:12:3")
	}
}

func TestPosition_IsValid(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"zero", Position{}, false},
		{"line set", Position{Line: 1, Column: 1}, true},
		{"no filename", Position{Line: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	span := Span{
		Start: Position{Line: 1, Column: 5, Offset: 4},
		End:   Position{Line: 3, Column: 2, Offset: 30},
	}
	inside := Position{Line: 2, Column: 1, Offset: 12}
	before := Position{Line: 1, Column: 1, Offset: 0}

	if !span.Contains(inside) {
		t.Errorf("Contains(%v) = false, want true", inside)
	}
	if span.Contains(before) {
		t.Errorf("Contains(%v) = true, want false", before)
	}
	if got := span.String(); got != ":1:5-3:2" {
		t.Errorf("Span.String() = %q", got)
	}
}
