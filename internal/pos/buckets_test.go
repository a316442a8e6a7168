package pos_test

import (
	"testing"
	"time"

	"posreport/internal/pos"
)

func TestPartySizeBucket(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "1"}, {1, "1"}, {2, "2"}, {3, "3-4"}, {4, "3-4"}, {5, "5+"}, {12, "5+"},
	}
	for _, tc := range cases {
		if got := pos.PartySizeBucket(tc.count); got != tc.want {
			t.Fatalf("PartySizeBucket(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestHourBucketLabelKeepsAdjustedForm(t *testing.T) {
	if got := pos.HourBucketLabel(9, 1); got != "09:00" {
		t.Fatalf("label = %q", got)
	}
	if got := pos.HourBucketLabel(26, 1); got != "26:00" {
		t.Fatalf("label = %q, want 26:00", got)
	}
}

func TestHourBucketLabelWiderBuckets(t *testing.T) {
	if got := pos.HourBucketLabel(15, 2); got != "14:00-16:00" {
		t.Fatalf("label = %q, want 14:00-16:00", got)
	}
	if got := pos.HourBucketLabel(25, 3); got != "24:00-27:00" {
		t.Fatalf("label = %q, want 24:00-27:00", got)
	}
}

func TestParseAxis(t *testing.T) {
	if axis, ok := pos.ParseAxis(" Weekday "); !ok || axis != pos.AxisWeekday {
		t.Fatalf("ParseAxis(Weekday) = %q, %v", axis, ok)
	}
	if _, ok := pos.ParseAxis("hour"); ok {
		t.Fatal("partial axis name should not parse")
	}
}

func TestSliceMatches(t *testing.T) {
	ticket := pos.Ticket{
		Weekday:       time.Friday,
		CustomerCount: 3,
		Daypart:       pos.DaypartDinner,
		Category1:     "EAT IN",
		ProductCodes:  []string{"1001", "2002"},
		AdjustedHour:  19,
	}

	if !(pos.Slice{pos.AxisWeekday: "Fri"}).Matches(ticket) {
		t.Fatal("weekday slice should match")
	}
	if !(pos.Slice{pos.AxisPartySize: "3-4", pos.AxisDaypart: "Dinner"}).Matches(ticket) {
		t.Fatal("compound slice should match")
	}
	if !(pos.Slice{pos.AxisProduct: "2002"}).Matches(ticket) {
		t.Fatal("product slice should match any line item code")
	}
	if (pos.Slice{pos.AxisProduct: "9999"}).Matches(ticket) {
		t.Fatal("missing product code should not match")
	}
	if (pos.Slice{pos.AxisHourBucket: "18:00"}).Matches(ticket) {
		t.Fatal("wrong hour bucket should not match")
	}
	if !(pos.Slice{pos.AxisHourBucket: "19:00"}).Matches(ticket) {
		t.Fatal("single-hour bucket should match its hour")
	}
	if !(pos.Slice{pos.AxisHourBucket: "18:00-20:00"}).Matches(ticket) {
		t.Fatal("ranged bucket should contain hour 19")
	}
	if (pos.Slice{pos.AxisHourBucket: "20:00-22:00"}).Matches(ticket) {
		t.Fatal("ranged bucket past the hour should not match")
	}
	if !(pos.Slice{}).Matches(ticket) {
		t.Fatal("empty slice matches everything")
	}
}
