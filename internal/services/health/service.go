package health

// Service reports process health.
type Service struct {
	Version string
}

// Status returns the health payload.
func (s *Service) Status() map[string]string {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	return map[string]string{
		"status":  "ok",
		"version": version,
	}
}
