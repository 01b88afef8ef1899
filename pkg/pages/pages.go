// Package pages wraps each application screen's locators and common
// interactions behind named methods, so selector strings live in one place
// and test bodies read as user intent. Page objects hold no mutable state:
// each borrows the single page handle passed at construction, the test
// owns the page.
package pages

import "fmt"

// testID builds the primary selector for a stable data-testid attribute.
func testID(id string) string {
	return fmt.Sprintf(`[data-testid=%q]`, id)
}
