package parse

import "strings"

// maxKeywords caps the keyword set stored per job.
const maxKeywords = 20

var (
	remoteKeywords  = []string{"remote", "work from home", "wfh", "distributed", "anywhere"}
	internKeywords  = []string{"intern", "internship", "co-op", "summer position"}
	newGradKeywords = []string{"new grad", "entry level", "junior", "fresh graduate", "recent graduate"}
)

// techCatalogue is the fixed technology vocabulary scanned for keyword
// extraction. Catalogue order is preserved in the output, which keeps the
// stored keyword list deterministic.
var techCatalogue = []string{
	// Languages
	"python", "javascript", "typescript", "java", "go", "golang", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "elixir",

	// Frameworks
	"react", "vue", "angular", "django", "flask", "rails", "spring",
	"express", "fastapi", "nextjs", "svelte", "flutter", "react native",

	// Databases
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "dynamodb",
	"cassandra", "neo4j", "sqlite", "oracle",

	// Cloud / DevOps
	"aws", "gcp", "azure", "docker", "kubernetes", "k8s", "terraform",
	"jenkins", "gitlab", "github", "ci/cd", "devops", "microservices",

	// Data / ML
	"machine learning", "ml", "ai", "artificial intelligence", "data science",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",

	// Other
	"api", "rest", "graphql", "websocket", "blockchain", "web3",
	"security", "linux", "agile", "scrum",
}

// extractKeywords scans the catalogue for substring membership in the
// lower-cased text, capped at maxKeywords.
func extractKeywords(lower string) []string {
	var found []string
	for _, kw := range techCatalogue {
		if !strings.Contains(lower, kw) {
			continue
		}
		found = append(found, kw)
		if len(found) == maxKeywords {
			break
		}
	}
	return found
}
