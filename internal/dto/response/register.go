package response

type RegisterResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}
