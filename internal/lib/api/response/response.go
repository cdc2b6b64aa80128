package response

// Response is the envelope every API handler renders.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	statusOk    = "ok"
	statusError = "error"
)

func Ok(data any) Response {
	return Response{Status: statusOk, Data: data}
}

func Error(msg string) Response {
	return Response{Status: statusError, Error: msg}
}
