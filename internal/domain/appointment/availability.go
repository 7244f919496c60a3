package appointment

// Slot is an ephemeral availability value, never persisted.
type Slot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// Availability is the partition of one day's candidate slots.
type Availability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
	OccupiedSlots  []string `json:"occupied_slots"`
}
