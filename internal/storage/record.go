package storage

// StateRecord is the persisted blob and the export/import document.
type StateRecord struct {
	Tasks    []TaskRecord    `json:"tasks"`
	Seq      int             `json:"seq"`
	Settings *SettingsRecord `json:"settings,omitempty"`
}

// SettingsRecord holds persisted preferences.
type SettingsRecord struct {
	Reminders bool `json:"reminders"`
}

// TaskRecord is one task as stored. Timestamps are RFC3339 strings.
type TaskRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Desc            string   `json:"desc"`
	List            string   `json:"list"`
	Tags            []string `json:"tags"`
	Priority        string   `json:"priority"`
	Due             *string  `json:"due"`
	Estimate        *float64 `json:"estimate"`
	Repeat          string   `json:"repeat"`
	Color           string   `json:"color"`
	Deps            []string `json:"deps"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"createdAt"`
	CompletedAt     *string  `json:"completedAt"`
	Notified        bool     `json:"__notified,omitempty"`
	OverdueNotified bool     `json:"__overdueNotified,omitempty"`
}
