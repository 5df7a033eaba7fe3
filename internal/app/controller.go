package app

import (
	"fmt"

	"github.com/dshills/frontctl/internal/controller"
	"github.com/dshills/frontctl/internal/layout"
	"github.com/dshills/frontctl/internal/node"
)

// ControllerID is the id of the built-in controller. Layouts address it as
// "app.quit", "app.focus" and so on.
const ControllerID = "app"

// appController exposes application operations as actions.
type appController struct {
	controller.Base
	app *App
}

func newAppController(a *App) *appController {
	c := &appController{app: a}
	c.SetControllerID(ControllerID)
	c.On("quit", c.quit)
	c.On("focus", c.focus)
	c.On("set", c.set)
	c.On("log", c.log)
	return c
}

func (c *appController) quit(ctx *controller.Context) error {
	ctx.Stop()
	c.app.Quit()
	return nil
}

// focus moves focus to the element named by the "id" param.
func (c *appController) focus(ctx *controller.Context) error {
	el, err := c.element(ctx)
	if err != nil {
		return err
	}
	return c.app.terminal.Focus(el)
}

// set replaces the label of the element named by "id", or of the declaring
// element when no id is given.
func (c *appController) set(ctx *controller.Context) error {
	el, err := c.element(ctx)
	if err != nil {
		return err
	}
	el.SetAttribute(layout.AttrLabel, ctx.Params.Get("label").String())
	return nil
}

func (c *appController) log(ctx *controller.Context) error {
	c.app.logger.Info().
		Str("event", ctx.Event.Type()).
		Str("pass", ctx.Event.ID()).
		Msg(ctx.Params.Get("message").String())
	return nil
}

func (c *appController) element(ctx *controller.Context) (*node.Element, error) {
	id := ctx.Params.Get("id").String()
	if id == "" {
		el, ok := ctx.Node.(*node.Element)
		if !ok {
			return nil, fmt.Errorf("%w: declaring node is not an element", ErrElementNotFound)
		}
		return el, nil
	}
	el := c.app.root.FindByID(id)
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return el, nil
}
