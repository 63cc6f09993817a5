package service

const (
	PlaceholderEmpty    = "No projects found. Add one above."
	PlaceholderFailed   = "Failed to load projects"
	PlaceholderTimedOut = "Timed out loading projects"

	DefaultName        = "Unnamed Project"
	DefaultDescription = "No description provided"
	DefaultLocation    = "Unknown"

	MsgInvalidInput  = "Please fill out all fields correctly."
	MsgCreated       = "Project added successfully!"
	MsgDeleted       = "Project deleted successfully!"
	MsgConfirmDelete = "Are you sure you want to delete this project?"
	MsgUnknownError  = "Unknown error"
)

// failureMessages is the copy shown when a mutation does not go through.
type failureMessages struct {
	rejected string
	network  string
	timedOut string
}

var (
	createFailures = failureMessages{
		rejected: "Failed to add project",
		network:  "Network error while adding project.",
		timedOut: "Request timed out while adding project.",
	}
	deleteFailures = failureMessages{
		rejected: "Failed to delete project",
		network:  "Network error while deleting project.",
		timedOut: "Request timed out while deleting project.",
	}
)
