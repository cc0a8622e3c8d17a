package fields

import "testing"

func TestCoordinateValidator(t *testing.T) {
	validate := coordinateValidator("Latitude", -90, 90)

	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "inside range", input: "6.52", ok: true},
		{name: "lower bound", input: "-90", ok: true},
		{name: "upper bound", input: " 90 ", ok: true},
		{name: "beyond range", input: "95", ok: false},
		{name: "not a number", input: "six", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.input)
			if tc.ok && err != nil {
				t.Fatalf("validate(%q) = %v, want nil", tc.input, err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("validate(%q) should fail", tc.input)
				}
				want := "Latitude must be a number between -90 and 90"
				if err.Error() != want {
					t.Fatalf("message = %q, want %q", err.Error(), want)
				}
			}
		})
	}
}
