package domain

// Profile is the single process-wide user record. It is mutated in place and
// keeps no history. ReminderSound is inert metadata: nothing delivers
// reminders.
type Profile struct {
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	ReminderSound string `json:"reminderSound"`
}

// Default profile values, also used to backfill blank update fields.
const (
	DefaultProfileName   = "User"
	DefaultProfileAvatar = "😊"
	DefaultReminderSound = "default"
)

// NewProfile returns the profile every process starts with.
func NewProfile() Profile {
	return Profile{
		Name:          DefaultProfileName,
		Avatar:        DefaultProfileAvatar,
		ReminderSound: DefaultReminderSound,
	}
}

// TaskStats summarizes task counts per status for the profile view.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}
