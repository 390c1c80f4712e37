package confirm

import "testing"

const wellFormed = `<service_confirmation>
Name: Juan
Phone: 3334854080
Details: llanta ponchada
Address: Calle 5, Mazamitla
</service_confirmation>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		validate func(t *testing.T, rec Record)
	}{
		{
			name:   "well-formed block",
			input:  "Perfecto, confirmo tu solicitud.\n" + wellFormed + "\nEn breve nos comunicamos.",
			wantOK: true,
			validate: func(t *testing.T, rec Record) {
				if rec.Name != "Juan" {
					t.Errorf("Name = %q, want %q", rec.Name, "Juan")
				}
				if rec.Phone != "3334854080" {
					t.Errorf("Phone = %q, want %q", rec.Phone, "3334854080")
				}
				if rec.Details != "llanta ponchada" {
					t.Errorf("Details = %q, want %q", rec.Details, "llanta ponchada")
				}
				if rec.Address != "Calle 5, Mazamitla" {
					t.Errorf("Address = %q, want %q", rec.Address, "Calle 5, Mazamitla")
				}
			},
		},
		{
			name:   "no block",
			input:  "Hola, ¿en qué puedo ayudarte?",
			wantOK: false,
		},
		{
			name:   "unclosed block never commits",
			input:  "<service_confirmation>\nName: Juan\nPhone: 333\nAddress: Calle 5",
			wantOK: false,
		},
		{
			name:   "missing name",
			input:  "<service_confirmation>\nName:\nPhone: 333\nDetails: x\nAddress: Calle 5\n</service_confirmation>",
			wantOK: false,
		},
		{
			name:   "missing phone",
			input:  "<service_confirmation>\nName: Juan\nDetails: x\nAddress: Calle 5\n</service_confirmation>",
			wantOK: false,
		},
		{
			name:   "missing address",
			input:  "<service_confirmation>\nName: Juan\nPhone: 333\nDetails: x\nAddress:   \n</service_confirmation>",
			wantOK: false,
		},
		{
			name:   "details absent defaults",
			input:  "<service_confirmation>\nName: Juan\nPhone: 333\nAddress: Calle 5\n</service_confirmation>",
			wantOK: true,
			validate: func(t *testing.T, rec Record) {
				if rec.Details != DefaultDetails {
					t.Errorf("Details = %q, want default %q", rec.Details, DefaultDetails)
				}
			},
		},
		{
			name:   "fields order-independent",
			input:  "<service_confirmation>\nAddress: Calle 5\nDetails: fuga de agua\nPhone: 333\nName: Ana\n</service_confirmation>",
			wantOK: true,
			validate: func(t *testing.T, rec Record) {
				if rec.Name != "Ana" || rec.Address != "Calle 5" {
					t.Errorf("unexpected record: %+v", rec)
				}
			},
		},
		{
			name:   "lowercase labels not recognized",
			input:  "<service_confirmation>\nname: Juan\nphone: 333\naddress: Calle 5\n</service_confirmation>",
			wantOK: false,
		},
		{
			name:   "values keep colons after the first",
			input:  "<service_confirmation>\nName: Juan\nPhone: 333\nDetails: horario: 9 a 5\nAddress: Calle 5\n</service_confirmation>",
			wantOK: true,
			validate: func(t *testing.T, rec Record) {
				if rec.Details != "horario: 9 a 5" {
					t.Errorf("Details = %q", rec.Details)
				}
			},
		},
		{
			name: "only first block is used",
			input: "<service_confirmation>\nName: Primero\nPhone: 111\nAddress: Calle 1\n</service_confirmation>\n" +
				"<service_confirmation>\nName: Segundo\nPhone: 222\nAddress: Calle 2\n</service_confirmation>",
			wantOK: true,
			validate: func(t *testing.T, rec Record) {
				if rec.Name != "Primero" {
					t.Errorf("Name = %q, want first block's value", rec.Name)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := Extract(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Extract() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes exactly the block",
			input: "antes\n" + wellFormed + "\ndespués",
			want:  "antes\n\ndespués",
		},
		{
			name:  "no block is unchanged",
			input: "texto sin bloque, byte por byte",
			want:  "texto sin bloque, byte por byte",
		},
		{
			name:  "open block stays visible",
			input: "hola <service_confirmation>\nName: Juan",
			want:  "hola <service_confirmation>\nName: Juan",
		},
		{
			name: "only first block removed",
			input: "a" + wellFormed + "b" +
				"<service_confirmation>\nName: X\nPhone: 1\nAddress: Y\n</service_confirmation>",
			want: "ab<service_confirmation>\nName: X\nPhone: 1\nAddress: Y\n</service_confirmation>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.input); got != tt.want {
				t.Errorf("Redact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasOpenBlock(t *testing.T) {
	if !HasOpenBlock("texto <service_confirmation>\nName: J") {
		t.Error("expected open block to be detected")
	}
	if HasOpenBlock("texto " + wellFormed) {
		t.Error("closed block reported as open")
	}
	if HasOpenBlock("sin etiquetas") {
		t.Error("no tags reported as open")
	}
}

func TestArmsLocationSelect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"english phrase", "Please CLICK ON THE MAP to mark your house", true},
		{"spanish phrase", "Por favor haz clic en el mapa para marcar tu casa", true},
		{"mixed case spanish", "HAZ CLIC EN EL MAPA", true},
		{"unrelated text", "¿Me das tu dirección?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArmsLocationSelect(tt.text); got != tt.want {
				t.Errorf("ArmsLocationSelect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
