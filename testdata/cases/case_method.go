package app

type Server struct {
	addr string
}

func (s *Server) Start() error {
	if s.addr != "" {
	trace:
		{
			"binding"
			s.addr
		}
	}
warn:
	"no address"
	return nil
}
