package entity

// Fixed selection lists presented to users. Selections are made by 1-based
// index; the order here is the order shown in the prompts and must not be
// reshuffled without migrating stored records.

var TalentCategories = []string{
	"Director",
	"Assistant Director",
	"Screenwriter/Scriptwriter",
	"Lead Actors",
	"Supporting Actors",
	"Cinematographer/Director of Photography",
	"Camera Operator",
	"Production Designer",
	"Art Director",
	"Set Designer",
	"Costume Designer",
	"Makeup Artist",
	"Hair Stylist",
	"Sound Designer",
	"Sound Mixer",
	"Boom Operator",
	"Composer",
	"Film Editor",
	"Visual Effects (VFX) Artist",
	"Best Boy (Lighting Assistant)",
	"Lighting Technician",
	"Location Manager",
	"Unit Production Manager",
	"Casting Director",
	"Stunt Coordinator",
	"Special Effects Supervisor",
	"Script Supervisor",
	"Production Assistant",
}

var MaritalStatuses = []string{"Single", "Married", "Divorced", "Widowed"}

var Genders = []string{"Male", "Female"}

var InPersonCourses = []string{"Acting", "Cinematography", "Directing"}

var OnlineCourses = []string{"Scriptwriting", "Screenplay"}
