package shareitrepo

import "context"

// Call is one inbound gateway request to replay against the server.
type Call struct {
	Method    string
	Path      string
	RawQuery  string
	UserID    string
	RequestID string
	Body      []byte
}

// Reply is the server's answer, relayed to the client unchanged.
type Reply struct {
	Status      int
	ContentType string
	Body        []byte
}

type Repo interface {
	Forward(ctx context.Context, call Call) (*Reply, error)
}
