package letter

import (
	"reflect"
	"sort"
	"testing"
	"time"
)

func mockNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, time.March, 9, 10, 30, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	t.Cleanup(func() { NowFunc = time.Now })
	return now
}

func Test_Substitute(t *testing.T) {
	mockNow(t)

	tests := []struct {
		name string
		tmpl string
		ctx  Context
		want string
	}{
		{name: "no placeholders", tmpl: "Dear Sir or Madam,", want: "Dear Sir or Madam,"},
		{name: "empty template", tmpl: "", want: ""},
		{
			name: "plain variable",
			tmpl: "To whom it may concern: {{student_name}} is a student.",
			ctx:  Context{Values: map[string]string{"student_name": "Anish Shrestha"}},
			want: "To whom it may concern: Anish Shrestha is a student.",
		},
		{
			name: "unresolved placeholder is kept verbatim",
			tmpl: "Program: {{program_name}}",
			want: "Program: {{program_name}}",
		},
		{
			name: "extraneous context keys are inert",
			tmpl: "Hello {{a}}",
			ctx:  Context{Values: map[string]string{"a": "x", "b": "y", "c": "z"}},
			want: "Hello x",
		},
		{name: "current_year builtin", tmpl: "{{current_year}}", want: "2024"},
		{name: "current_date builtin", tmpl: "{{current_date}}", want: "March 9, 2024"},
		{name: "default user name", tmpl: "{{user_name}}", want: "[Student Name]"},
		{name: "default user email", tmpl: "{{user_email}}", want: ""},
		{
			name: "provided user",
			tmpl: "{{user_name}} <{{user_email}}>",
			ctx:  Context{User: UserInfo{Name: "Ada", Email: "ada@ioe.edu.np"}},
			want: "Ada <ada@ioe.edu.np>",
		},
		{
			name: "unknown user_ key falls back to flat lookup",
			tmpl: "{{user_phone}}",
			ctx:  Context{Values: map[string]string{"user_phone": "9841000000"}},
			want: "9841000000",
		},
		{name: "unknown user_ key unresolved", tmpl: "{{user_phone}}", want: "{{user_phone}}"},
		{
			name: "malformed placeholders pass through",
			tmpl: "{{a b}} {{}} {{{c}}} {incomplete}",
			ctx:  Context{Values: map[string]string{"c": "C"}},
			want: "{{a b}} {{}} {C} {incomplete}",
		},
		{
			name: "repeated placeholder",
			tmpl: "{{x}}-{{x}}",
			ctx:  Context{Values: map[string]string{"x": "1"}},
			want: "1-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.tmpl, tt.ctx); got != tt.want {
				t.Errorf("Substitute() = %q; want %q", got, tt.want)
			}
		})
	}
}

func Test_Substitute_currentYearMatchesClock(t *testing.T) {
	want := time.Now().Format("2006")
	if got := Substitute("{{current_year}}", Context{}); got != want {
		t.Errorf("Substitute() = %q; want %q", got, want)
	}
}

func Test_ExtractVariableNames(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want []string
	}{
		{name: "empty", tmpl: "no placeholders here"},
		{name: "duplicates collapse", tmpl: "{{a}} and {{b}} and {{a}}", want: []string{"a", "b"}},
		{
			name: "builtins included",
			tmpl: "{{student_name}} {{current_date}} {{user_name}}",
			want: []string{"current_date", "student_name", "user_name"},
		},
		{name: "malformed ignored", tmpl: "{{a b}} {{ok}}", want: []string{"ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVariableNames(tt.tmpl)
			sort.Strings(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractVariableNames() = %v; want %v", got, tt.want)
			}
		})
	}
}

func Test_ValidateRequired(t *testing.T) {
	specs := []VariableSpec{
		{Name: "x", Label: "X", Type: TypeShortText, Required: true},
		{Name: "y", Label: "Y", Type: TypeShortText},
		{Name: "z", Label: "Z", Type: TypeLongText, Required: true, DefaultValue: "fallback"},
	}

	tests := []struct {
		name string
		ctx  Context
		want []string
	}{
		{name: "missing required", want: []string{"X"}},
		{name: "provided", ctx: Context{Values: map[string]string{"x": "value"}}},
		{name: "whitespace only is missing", ctx: Context{Values: map[string]string{"x": "   "}}, want: []string{"X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateRequired(specs, tt.ctx); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateRequired() = %v; want %v", got, tt.want)
			}
		})
	}

	t.Run("order follows specs", func(t *testing.T) {
		ordered := []VariableSpec{
			{Name: "b", Label: "B", Required: true},
			{Name: "a", Label: "A", Required: true},
		}
		want := []string{"B", "A"}
		if got := ValidateRequired(ordered, Context{}); !reflect.DeepEqual(got, want) {
			t.Errorf("ValidateRequired() = %v; want %v", got, want)
		}
	})
}

func Test_BuildDefaultContext(t *testing.T) {
	mockNow(t)

	specs := []VariableSpec{
		{Name: "greeting", Label: "Greeting", DefaultValue: "Dear Admissions Committee"},
		{Name: "signature", Label: "Signature", DefaultValue: "Sincerely, {{user_name}}"},
		{Name: "year", Label: "Year", DefaultValue: "{{current_year}}"},
		{Name: "body", Label: "Body"}, // no default
	}

	ctx := BuildDefaultContext(specs, UserInfo{Name: "Ada", Email: "ada@ioe.edu.np"})
	want := map[string]string{
		"greeting":  "Dear Admissions Committee",
		"signature": "Sincerely, Ada",
		"year":      "2024",
	}
	if !reflect.DeepEqual(ctx.Values, want) {
		t.Errorf("BuildDefaultContext() values = %v; want %v", ctx.Values, want)
	}
	if ctx.User.Name != "Ada" {
		t.Errorf("BuildDefaultContext() user = %v; want Ada", ctx.User)
	}
}
