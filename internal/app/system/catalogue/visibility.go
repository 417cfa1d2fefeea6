// internal/app/system/catalogue/visibility.go
package catalogue

import "github.com/pkslestari/portal/internal/domain/models"

// Visible decides whether a material may be shown to the viewer.
//
// Rules, evaluated in order, short-circuiting:
//  1. a non-public material is hidden from anonymous viewers
//  2. a material requiring assessment completion is hidden from viewers
//     without a completed assessment
//  3. otherwise the material is visible
//
// The predicate is pure; HasCompletedAssessment must be resolved by the
// caller before invocation, defaulting to false when the lookup fails.
func Visible(m models.Material, viewer models.ViewerContext) bool {
	if !m.IsPublic && !viewer.IsLoggedIn {
		return false
	}
	if m.RequiresAssessment && !viewer.HasCompletedAssessment {
		return false
	}
	return true
}
