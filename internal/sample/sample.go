// Package sample holds the fixed demo data set: six reports, the pending
// claims queue and the lists that populate filter choices.
package sample

import (
	"slices"
	"time"

	"github.com/erazemk/unifind/internal/model"
)

// Campus is the only campus in the demo data.
const Campus = "Main Campus"

// Buildings lists the campus buildings in display order.
var Buildings = []string{
	"Central Library",
	"Student Center",
	"Sports Complex",
	"Engineering Building",
	"Science Building",
	"Arts Building",
	"Business School",
	"Parking Structure",
	"Dormitory A",
	"Dormitory B",
	"Administration Building",
}

// CategoryLabels maps category values to display labels.
var CategoryLabels = map[string]string{
	"electronics": "Electronics",
	"documents":   "Documents & IDs",
	"accessories": "Accessories",
	"clothing":    "Clothing",
	"keys":        "Keys",
	"bags":        "Bags & Wallets",
	"other":       "Other",
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var items = []model.Report{
	{
		ID:           "1",
		Type:         model.ReportTypeLost,
		Title:        `MacBook Pro 14"`,
		Description:  "Silver MacBook Pro with stickers on the back. Has a small dent on the corner. Last seen in the library study room.",
		Category:     "electronics",
		Status:       model.StatusLost,
		Campus:       Campus,
		LocationText: "Central Library - Study Room 3B",
		Building:     "Central Library",
		Date:         "2024-12-10",
		Time:         "14:30",
		Reporter:     model.Person{Name: "Alex Johnson", Email: "alex.j@university.edu", Avatar: "/male-student-avatar.png"},
		CreatedAt:    ts("2024-12-10T14:35:00Z"),
	},
	{
		ID:           "2",
		Type:         model.ReportTypeFound,
		Title:        "Student ID Card",
		Description:  "Found a student ID card near the cafeteria entrance. Name visible on card.",
		Category:     "documents",
		Status:       model.StatusFound,
		Campus:       Campus,
		LocationText: "Main Cafeteria Entrance",
		Building:     "Student Center",
		Date:         "2024-12-11",
		Time:         "09:15",
		Reporter:     model.Person{Name: "Sarah Chen", Email: "sarah.c@university.edu", Avatar: "/female-student-avatar.png"},
		CreatedAt:    ts("2024-12-11T09:20:00Z"),
	},
	{
		ID:           "3",
		Type:         model.ReportTypeFound,
		Title:        "Black Wireless Earbuds",
		Description:  "Found a pair of black wireless earbuds in charging case near the gym lockers.",
		Category:     "electronics",
		Status:       model.StatusFound,
		Campus:       Campus,
		LocationText: "Sports Complex - Locker Room A",
		Building:     "Sports Complex",
		Date:         "2024-12-11",
		Time:         "16:45",
		Reporter:     model.Person{Name: "Mike Davis", Email: "mike.d@university.edu", Avatar: "/student-avatar-male-athletic.jpg"},
		CreatedAt:    ts("2024-12-11T16:50:00Z"),
	},
	{
		ID:           "4",
		Type:         model.ReportTypeLost,
		Title:        "Blue Backpack with Books",
		Description:  "Lost my blue North Face backpack with textbooks inside. Has my name tag on the inside pocket.",
		Category:     "bags",
		Status:       model.StatusLost,
		Campus:       Campus,
		LocationText: "Engineering Building - Room 201",
		Building:     "Engineering Building",
		Date:         "2024-12-09",
		Time:         "11:00",
		Reporter:     model.Person{Name: "Emily Wang", Email: "emily.w@university.edu", Avatar: "/student-avatar-female-asian.jpg"},
		CreatedAt:    ts("2024-12-09T11:15:00Z"),
	},
	{
		ID:           "5",
		Type:         model.ReportTypeFound,
		Title:        "Car Keys with Keychain",
		Description:  "Found a set of car keys with a university keychain attached. Toyota key fob.",
		Category:     "keys",
		Status:       model.StatusFound,
		Campus:       Campus,
		LocationText: "Parking Lot B - Near Entrance",
		Building:     "Parking Structure",
		Date:         "2024-12-12",
		Time:         "08:30",
		Reporter:     model.Person{Name: "James Wilson", Email: "james.w@university.edu", Avatar: "/male-student-avatar.png"},
		CreatedAt:    ts("2024-12-12T08:35:00Z"),
	},
	{
		ID:           "6",
		Type:         model.ReportTypeFound,
		Title:        "Reading Glasses",
		Description:  "Black frame reading glasses found in the chemistry lab.",
		Category:     "accessories",
		Status:       model.StatusClaimed,
		Campus:       Campus,
		LocationText: "Science Building - Chem Lab 101",
		Building:     "Science Building",
		Date:         "2024-12-08",
		Time:         "15:20",
		Reporter:     model.Person{Name: "Lisa Park", Email: "lisa.p@university.edu", Avatar: "/female-student-avatar.png"},
		CreatedAt:    ts("2024-12-08T15:25:00Z"),
	},
}

var claims = []model.Claim{
	{
		ID:               "1",
		ItemID:           "1",
		ItemTitle:        `MacBook Pro 14"`,
		Claimant:         model.Person{Name: "David Kim", Email: "david.k@university.edu", Avatar: "/student-male-studying.png"},
		SubmittedAt:      ts("2024-12-12T10:30:00Z"),
		VerificationNote: "Can describe the stickers on back",
		State:            model.ClaimPending,
	},
	{
		ID:               "2",
		ItemID:           "2",
		ItemTitle:        "Student ID Card",
		Claimant:         model.Person{Name: "Maria Garcia", Email: "maria.g@university.edu", Avatar: "/diverse-female-student.png"},
		SubmittedAt:      ts("2024-12-12T09:15:00Z"),
		VerificationNote: "Name matches ID",
		State:            model.ClaimPending,
	},
	{
		ID:               "3",
		ItemID:           "4",
		ItemTitle:        "Blue Backpack with Books",
		Claimant:         model.Person{Name: "Emily Wang", Email: "emily.w@university.edu", Avatar: "/student-female-asian.jpg"},
		SubmittedAt:      ts("2024-12-11T16:45:00Z"),
		VerificationNote: "Can describe contents and name tag location",
		State:            model.ClaimPending,
	},
}

// Items returns a fresh copy of the six sample reports in source order.
func Items() []model.Report {
	return slices.Clone(items)
}

// Claims returns a fresh copy of the pending sample claims.
func Claims() []model.Claim {
	return slices.Clone(claims)
}
