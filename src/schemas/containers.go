package schemas

type CreateContainerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateContainerRequest is a partial patch; nil fields keep their current
// value. The merged record is re-validated as a whole before writing.
type UpdateContainerRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
