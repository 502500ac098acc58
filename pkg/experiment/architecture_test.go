package experiment

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"

	"msexperiment/testutil"
)

// TestPublicPackagesStayAboveInfra walks every package under pkg/ and fails if
// any of them, tests included, imports an internal package. The engine must be
// usable without pulling in storage drivers, blob stores, or the service layer.
func TestPublicPackagesStayAboveInfra(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "msexperiment/pkg/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, "msexperiment/internal/") {
				seen[pkg.PkgPath+": "+importPath] = struct{}{}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of internal package: %s", v)
		}
		t.Fatalf("found %d forbidden imports of internal packages", len(violations))
	}
}

func TestExperimentDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"the experiment container depends only on the collection layer")
}
