package http

import (
	"net/http"
)

type HomeHandler interface {
	Home(w http.ResponseWriter, r *http.Request)
	NotFound(w http.ResponseWriter, r *http.Request)
}

type HomeHandlerImpl struct {
	renderer *Renderer
}

func NewHomeHandler(renderer *Renderer) HomeHandler {
	return &HomeHandlerImpl{renderer: renderer}
}

type homeView struct {
	Role string
}

// Home implements HomeHandler.
func (h *HomeHandlerImpl) Home(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.home")
	if p.Resolution.IsResolved() {
		p.Data = homeView{Role: p.Resolution.Role.String()}
	} else {
		p.Data = homeView{}
	}
	h.renderer.Render(w, http.StatusOK, "home", p)
}

// NotFound implements HomeHandler.
func (h *HomeHandlerImpl) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pagePath(staffIDFrom(r), ""), http.StatusFound)
}
