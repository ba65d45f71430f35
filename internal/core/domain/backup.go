package domain

// BackupSnapshot is the full entity set as one serializable document. Restore
// remaps the snapshot's ids to freshly assigned ones; the old ids only exist
// to stitch foreign keys back together.
type BackupSnapshot struct {
	Customers []Customer        `json:"customers"`
	Products  []Product         `json:"products"`
	Users     []BackupUser      `json:"users"`
	Entries   []LedgerEntry     `json:"entries"`
	Items     []LedgerItem      `json:"items"`
	Donations []Donation        `json:"donations"`
	Usage     []DonationUsage   `json:"usage"`
	Settings  map[string]string `json:"settings"`
}

// BackupUser is a User with its password hash included. Snapshots are operator
// backups; hashes must survive a restore.
type BackupUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}
