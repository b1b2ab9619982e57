package detect

// Rule associates one build ecosystem with the manifest paths that signal
// its presence and the dependency tokens that identify frameworks inside
// a matched manifest. The table is plain data: tuning detection accuracy
// means editing rules, not code.
type Rule struct {
	Tool       string           // build tool tag recorded when a path exists
	Paths      []string         // manifest path candidates, probed in order
	Frameworks []FrameworkToken // content tokens checked in matched manifests
}

// FrameworkToken maps a distinctive dependency string to a framework tag.
// Tokens are matched as substrings, so they must be specific enough to
// avoid false positives (e.g. "@angular/core", not "angular").
type FrameworkToken struct {
	Name  string // framework tag recorded on a match
	Token string // distinctive string searched for in manifest content
}

// DefaultRules covers the common build ecosystems, ordered roughly by how
// often the pipeline encounters them. Probing stops per rule at the first
// existing path.
var DefaultRules = []Rule{
	{
		Tool:  "Maven",
		Paths: []string{"pom.xml"},
		Frameworks: []FrameworkToken{
			{Name: "Spring Boot", Token: "spring-boot"},
			{Name: "Spring", Token: "org.springframework"},
			{Name: "Quarkus", Token: "io.quarkus"},
			{Name: "Micronaut", Token: "io.micronaut"},
		},
	},
	{
		Tool:  "Gradle",
		Paths: []string{"build.gradle", "build.gradle.kts", "settings.gradle"},
		Frameworks: []FrameworkToken{
			{Name: "Spring Boot", Token: "org.springframework.boot"},
			{Name: "Android", Token: "com.android.application"},
		},
	},
	{
		Tool:  "Ant",
		Paths: []string{"build.xml"},
	},
	{
		Tool:  "npm",
		Paths: []string{"package.json"},
		Frameworks: []FrameworkToken{
			{Name: "Angular", Token: `"@angular/core"`},
			{Name: "React", Token: `"react"`},
			{Name: "Vue", Token: `"vue"`},
			{Name: "Next.js", Token: `"next"`},
			{Name: "Express", Token: `"express"`},
			{Name: "Svelte", Token: `"svelte"`},
		},
	},
	{
		Tool:  "Go modules",
		Paths: []string{"go.mod"},
		Frameworks: []FrameworkToken{
			{Name: "Gin", Token: "github.com/gin-gonic/gin"},
			{Name: "Echo", Token: "github.com/labstack/echo"},
			{Name: "Chi", Token: "github.com/go-chi/chi"},
			{Name: "Cobra", Token: "github.com/spf13/cobra"},
		},
	},
	{
		Tool:  "Cargo",
		Paths: []string{"Cargo.toml"},
		Frameworks: []FrameworkToken{
			{Name: "Actix", Token: "actix-web"},
			{Name: "Rocket", Token: "rocket ="},
			{Name: "Tokio", Token: "tokio"},
		},
	},
	{
		Tool:  "pip",
		Paths: []string{"requirements.txt"},
		Frameworks: []FrameworkToken{
			{Name: "Django", Token: "django"},
			{Name: "Flask", Token: "flask"},
			{Name: "FastAPI", Token: "fastapi"},
		},
	},
	{
		Tool:  "Poetry",
		Paths: []string{"pyproject.toml"},
		Frameworks: []FrameworkToken{
			{Name: "Django", Token: "django"},
			{Name: "Flask", Token: "flask"},
			{Name: "FastAPI", Token: "fastapi"},
		},
	},
	{
		Tool:  "Bundler",
		Paths: []string{"Gemfile"},
		Frameworks: []FrameworkToken{
			{Name: "Rails", Token: `"rails"`},
			{Name: "Sinatra", Token: `"sinatra"`},
		},
	},
	{
		Tool:  "Composer",
		Paths: []string{"composer.json"},
		Frameworks: []FrameworkToken{
			{Name: "Laravel", Token: "laravel/framework"},
			{Name: "Symfony", Token: "symfony/framework-bundle"},
		},
	},
	{
		Tool:  "CMake",
		Paths: []string{"CMakeLists.txt"},
	},
	{
		Tool:  "Make",
		Paths: []string{"Makefile"},
	},
}
