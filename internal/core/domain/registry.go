package domain

// RegistryEntry is one row of the student/module registry spreadsheet.
type RegistryEntry struct {
	StudentID  string
	AccessCode string
	Programme  string
	Module     string
	FileName   string
}

// ModuleAssignment is the resolved view of a student's registry rows:
// the module they may query and the document files that belong to it.
type ModuleAssignment struct {
	StudentID string
	Programme string
	Module    string

	// Files are the document file names, in registry order.
	Files []string
}
