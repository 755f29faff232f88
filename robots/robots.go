// Package robots generates the robots.txt policy that keeps well-behaved
// crawlers away from the trap path. Any client that fetches the trap anyway
// has, by definition, ignored the policy.
package robots

// Generate returns the policy body disallowing trapPath for all user
// agents. Pure function, no failure mode.
func Generate(trapPath string) string {
	return "User-agent: *\nDisallow: " + trapPath + "\n"
}
