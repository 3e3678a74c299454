package dto

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline"`
	AssignedTo  *string `json:"assigned_to"`
}

type EditTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Deadline    *string `json:"deadline"`
	AssignedTo  *string `json:"assigned_to"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

type CreateWorkerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
