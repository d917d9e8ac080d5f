package agreement

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusInProgress, StatusReview, true},
		{StatusInProgress, StatusSigned, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusReview, StatusSigned, true},
		{StatusReview, StatusCancelled, true},
		{StatusReview, StatusInProgress, false},
		{StatusSigned, StatusReview, false},
		{StatusSigned, StatusCancelled, false},
		{StatusSigned, StatusSigned, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCancelled, StatusSigned, false},
		{StatusInProgress, StatusInProgress, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusMutable(t *testing.T) {
	cases := map[Status]bool{
		StatusInProgress: true,
		StatusReview:     true,
		StatusSigned:     false,
		StatusCancelled:  false,
	}
	for status, want := range cases {
		if got := status.Mutable(); got != want {
			t.Errorf("%s.Mutable() = %v, want %v", status, got, want)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"RENTAL", "rental", " Loan ", "BUSINESS", "freelancing"} {
		if _, err := ParseType(s); err != nil {
			t.Errorf("ParseType(%q): unexpected error %v", s, err)
		}
	}

	if _, err := ParseType("MARRIAGE"); err == nil {
		t.Errorf("expected error for unknown type")
	}
}
