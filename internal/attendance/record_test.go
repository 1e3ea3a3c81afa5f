package attendance

import (
	"reflect"
	"strings"
	"testing"
)

func TestMapLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
	}{
		{
			"full line",
			"08:00 Mon Yoga 30 X X X X 12",
			Record{"08:00", "Mon", "Yoga", "30", "X X X X", "12"},
		},
		{
			"two tokens",
			"08:00 Mon",
			Record{Schedule: "08:00", Days: "Mon"},
		},
		{
			"empty",
			"",
			Record{},
		},
		{
			"whitespace only",
			" \t  ",
			Record{},
		},
		{
			"one token",
			"08:00",
			Record{Schedule: "08:00"},
		},
		{
			"three tokens",
			"08:00 Mon Yoga",
			Record{Schedule: "08:00", Days: "Mon", ActivityOrInstructor: "Yoga"},
		},
		{
			"four tokens has no total",
			"08:00 Mon Yoga 30",
			Record{"08:00", "Mon", "Yoga", "30", "", ""},
		},
		{
			"five tokens has total only",
			"08:00 Mon Yoga 30 12",
			Record{"08:00", "Mon", "Yoga", "30", "", "12"},
		},
		{
			"six tokens has one mark",
			"08:00 Mon Yoga 30 X 12",
			Record{"08:00", "Mon", "Yoga", "30", "X", "12"},
		},
		{
			"runs of whitespace collapse",
			"  10:30\tTer  Pilates   Maria   X  -  X \t 2  ",
			Record{"10:30", "Ter", "Pilates", "Maria", "X - X", "2"},
		},
		{
			"garbage passes through",
			"O8;0O M0n Y0ga ?? |l| 1Z",
			Record{"O8;0O", "M0n", "Y0ga", "??", "|l|", "1Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapLine(tt.line)
			if got != tt.want {
				t.Errorf("MapLine(%q):\n got  %+v\n want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFromTokens_Boundaries(t *testing.T) {
	// Build lines of every length from 0 to 40 and check the span rules.
	for n := 0; n <= 40; n++ {
		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = "t" + strings.Repeat("x", i)
		}

		r := FromTokens(tokens)

		switch {
		case n <= 4:
			if r.MonthlyAttendance != "" || r.MonthlyTotal != "" {
				t.Errorf("n=%d: attendance=%q total=%q, want both empty", n, r.MonthlyAttendance, r.MonthlyTotal)
			}
		case n == 5:
			if r.MonthlyAttendance != "" {
				t.Errorf("n=5: attendance=%q, want empty", r.MonthlyAttendance)
			}
			if r.MonthlyTotal != tokens[4] {
				t.Errorf("n=5: total=%q, want %q", r.MonthlyTotal, tokens[4])
			}
		default:
			wantSpan := strings.Join(tokens[4:n-1], " ")
			if r.MonthlyAttendance != wantSpan {
				t.Errorf("n=%d: attendance=%q, want %q", n, r.MonthlyAttendance, wantSpan)
			}
			if r.MonthlyTotal != tokens[n-1] {
				t.Errorf("n=%d: total=%q, want %q", n, r.MonthlyTotal, tokens[n-1])
			}
		}

		// Leading fields are positional regardless of length.
		for i, got := range r.Values()[:4] {
			want := ""
			if i < n {
				want = tokens[i]
			}
			if got != want {
				t.Errorf("n=%d field %d: got %q, want %q", n, i, got, want)
			}
		}
	}
}

func TestFromTokens_DoesNotAliasInput(t *testing.T) {
	tokens := []string{"08:00", "Mon", "Yoga", "30", "X", "X", "12"}
	r := FromTokens(tokens)
	tokens[4] = "changed"

	if r.MonthlyAttendance != "X X" {
		t.Errorf("record changed with input slice: %q", r.MonthlyAttendance)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize(" a\tb  c\n")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize: got %v, want %v", got, want)
	}
	if len(Tokenize("   ")) != 0 {
		t.Error("Tokenize of blank line should be empty")
	}
}

func TestRecord_ValuesRoundTrip(t *testing.T) {
	r := Record{"08:00", "Mon", "Yoga", "30", "X X", "12"}

	values := r.Values()
	if len(values) != len(Columns) {
		t.Fatalf("Values: got %d fields, want %d", len(values), len(Columns))
	}
	if FromValues(values) != r {
		t.Errorf("FromValues(Values()) changed the record: %+v", FromValues(values))
	}
}

func TestFromValues_Short(t *testing.T) {
	got := FromValues([]string{"08:00", "Mon"})
	want := Record{Schedule: "08:00", Days: "Mon"}
	if got != want {
		t.Errorf("FromValues: got %+v, want %+v", got, want)
	}
}

func TestColumns(t *testing.T) {
	want := [6]string{
		"Horários",
		"Dias",
		"Atividade / Professor",
		"Idade / Morador",
		"Frequência - Dias do Mês",
		"Total do Mês",
	}
	if Columns != want {
		t.Errorf("Columns: got %v, want %v", Columns, want)
	}
}
