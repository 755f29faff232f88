package core

// Classification is the outcome of request dispatch: every incoming
// request is exactly one of these.
type Classification int

const (
	ClassNormal Classification = iota
	ClassBlocked
	ClassTrap
	ClassRobots
)

func (c Classification) String() string {
	switch c {
	case ClassNormal:
		return "normal"
	case ClassBlocked:
		return "blocked"
	case ClassTrap:
		return "trap"
	case ClassRobots:
		return "robots"
	default:
		return "unknown"
	}
}

// Classify maps a request's path and client identity to its
// classification. The order is load-bearing, first match wins:
//
//  1. blocked identity, regardless of path. Once blocked a client never
//     again reaches real content, robots.txt, or a second trap side
//     effect; blocking is sticky and total.
//  2. exact trap path match.
//  3. /robots.txt.
//  4. everything else is a normal file request.
func Classify(path, ip, trapPath string, blocked BlockStore) Classification {
	if blocked.Contains(ip) {
		return ClassBlocked
	}
	if path == trapPath {
		return ClassTrap
	}
	if path == "/robots.txt" {
		return ClassRobots
	}
	return ClassNormal
}
