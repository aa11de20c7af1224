package views

import "github.com/felixgeelhaar/omsctl/internal/router"

// Brand is the product name shown in the navigation bar
const Brand = "OMS/WMS"

// Navigator lists the routes the current session may open
type Navigator interface {
	Visible() []router.Route
}

// NavBar is the top navigation
type NavBar struct {
	session Session
	nav     Navigator
}

// NewNavBar creates the navigation bar
func NewNavBar(s Session, nav Navigator) *NavBar {
	return &NavBar{session: s, nav: nav}
}

// Title is "OMS/WMS | <role>", or the brand alone without a session
func (n *NavBar) Title() string {
	user, ok := n.session.User()
	if !ok {
		return Brand
	}
	return Brand + " | " + user.Role.String()
}

// Links returns the routes to offer, in menu order
func (n *NavBar) Links() []router.Route {
	return n.nav.Visible()
}
