package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusDeclined, false},
		{StatusAccepted, StatusPending, false},
		{StatusDeclined, StatusAccepted, false},
		{StatusDeclined, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusAccepted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestInsertBookingValidate(t *testing.T) {
	valid := func() InsertBooking {
		return InsertBooking{
			PriestID:    "priest-1",
			ServiceType: ServiceMass,
			Date:        "2026-03-15",
			Time:        "10:30",
			Location:    "St. Peter Chapel",
		}
	}

	in := valid()
	if err := in.Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	in = valid()
	in.PriestID = "  "
	if err := in.Validate(); err == nil {
		t.Fatal("blank priestId accepted")
	}

	in = valid()
	in.ServiceType = "exorcism"
	if err := in.Validate(); err == nil {
		t.Fatal("unknown service type accepted")
	}

	in = valid()
	in.Date = "15-03-2026"
	if err := in.Validate(); err == nil {
		t.Fatal("malformed date accepted")
	}

	in = valid()
	in.Time = "25:99"
	if err := in.Validate(); err == nil {
		t.Fatal("malformed time accepted")
	}

	in = valid()
	in.Location = ""
	if err := in.Validate(); err == nil {
		t.Fatal("blank location accepted")
	}
}

func TestBookingParticipant(t *testing.T) {
	b := Booking{PriestID: "p1", InstitutionID: "i1"}
	if !b.Participant("p1") || !b.Participant("i1") {
		t.Fatal("parties not recognized as participants")
	}
	if b.Participant("someone-else") {
		t.Fatal("outsider recognized as participant")
	}
	if b.Participant("") {
		t.Fatal("empty user id recognized as participant")
	}
}
