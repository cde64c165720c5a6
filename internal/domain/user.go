package domain

const UnknownUserName = "Unknown"

type Contact struct {
	PushToken string `json:"pushToken,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name,omitempty"`
	EmergencyContacts []Contact `json:"emergencyContacts"`
}

// UserProfile is what the contact resolver hands to the incident pipeline.
type UserProfile struct {
	Name     string    `json:"name"`
	Contacts []Contact `json:"contacts"`
}

func UnknownProfile() UserProfile {
	return UserProfile{Name: UnknownUserName, Contacts: []Contact{}}
}
