// Package all imports all nine component-type definitions.
//
// Import this package for its side effects to register every type:
//
//	import (
//		"github.com/litlfred/dakit"
//		_ "github.com/litlfred/dakit/all"
//	)
package all

import (
	_ "github.com/litlfred/dakit/internal/businessprocesses"
	_ "github.com/litlfred/dakit/internal/dataelements"
	_ "github.com/litlfred/dakit/internal/decisionlogic"
	_ "github.com/litlfred/dakit/internal/healthinterventions"
	_ "github.com/litlfred/dakit/internal/indicators"
	_ "github.com/litlfred/dakit/internal/personas"
	_ "github.com/litlfred/dakit/internal/requirements"
	_ "github.com/litlfred/dakit/internal/testscenarios"
	_ "github.com/litlfred/dakit/internal/userscenarios"
)
