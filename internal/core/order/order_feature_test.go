package order_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/akshitjain2004/EnvoSafe/internal/core/catalog"
	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
	"github.com/akshitjain2004/EnvoSafe/internal/core/order"
	"github.com/akshitjain2004/EnvoSafe/internal/core/wallet"
)

type orderTestContext struct {
	ledger   *wallet.Ledger
	workflow *order.Workflow
	err      error
}

func (c *orderTestContext) reset() {
	c.ledger = nil
	c.workflow = nil
	c.err = nil
}

func (c *orderTestContext) aWalletHoldingCredits(balance int) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	c.ledger, err = wallet.NewLedger(domain.Credits(balance))
	if err != nil {
		return err
	}
	c.workflow = order.NewWorkflow(cat, c.ledger)
	return nil
}

func (c *orderTestContext) thePlantIsSelected(name string) error {
	return c.workflow.SelectPlant(name)
}

func (c *orderTestContext) theQuantityIs(q int) error {
	return c.workflow.SetQuantity(q)
}

func (c *orderTestContext) thePriceIsCalculated() error {
	c.err = c.workflow.Recompute()
	return nil
}

func (c *orderTestContext) thePaymentMethodIs(raw string) error {
	m, err := domain.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	return c.workflow.ChoosePaymentMethod(m)
}

func (c *orderTestContext) theOrderIsPlaced() error {
	return c.workflow.PlaceOrder()
}

func (c *orderTestContext) theShippingCityIs(city string) error {
	return c.workflow.SetAddressField("city", city)
}

func (c *orderTestContext) paymentIsConfirmed() error {
	return c.workflow.ConfirmPayment(context.Background())
}

func (c *orderTestContext) theOrderStateIs(want string) error {
	if got := c.workflow.State(); string(got) != want {
		return fmt.Errorf("expected state %q, got %q", want, got)
	}
	return nil
}

func (c *orderTestContext) theOrderTotalIs(want int) error {
	snap := c.workflow.Snapshot()
	if snap.Price == nil {
		return fmt.Errorf("expected a price, got none (err: %v)", c.err)
	}
	if snap.Price.Total != domain.Credits(want) {
		return fmt.Errorf("expected total %d, got %d", want, snap.Price.Total)
	}
	return nil
}

func (c *orderTestContext) theMessageIs(want string) error {
	if got := c.workflow.Snapshot().Message; got != want {
		return fmt.Errorf("expected message %q, got %q", want, got)
	}
	return nil
}

func (c *orderTestContext) theWalletHoldsCredits(want int) error {
	if got := c.ledger.Balance(); got != domain.Credits(want) {
		return fmt.Errorf("expected balance %d, got %d", want, got)
	}
	return nil
}

func (c *orderTestContext) pricingFailsWith(substr string) error {
	if c.err == nil {
		return fmt.Errorf("expected pricing error containing %q", substr)
	}
	if !strings.Contains(c.err.Error(), substr) {
		return fmt.Errorf("expected error containing %q, got %q", substr, c.err.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &orderTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a wallet holding (\d+) credits$`, tc.aWalletHoldingCredits)
	ctx.Step(`^the plant "([^"]*)" is selected$`, tc.thePlantIsSelected)
	ctx.Step(`^the quantity is (\d+)$`, tc.theQuantityIs)

	// When steps
	ctx.Step(`^the price is calculated$`, tc.thePriceIsCalculated)
	ctx.Step(`^the payment method is "([^"]*)"$`, tc.thePaymentMethodIs)
	ctx.Step(`^the order is placed$`, tc.theOrderIsPlaced)
	ctx.Step(`^the shipping city is "([^"]*)"$`, tc.theShippingCityIs)
	ctx.Step(`^payment is confirmed$`, tc.paymentIsConfirmed)

	// Then steps
	ctx.Step(`^the order state is "([^"]*)"$`, tc.theOrderStateIs)
	ctx.Step(`^the order total is (\d+)$`, tc.theOrderTotalIs)
	ctx.Step(`^the message is "([^"]*)"$`, tc.theMessageIs)
	ctx.Step(`^the wallet holds (\d+) credits$`, tc.theWalletHoldsCredits)
	ctx.Step(`^pricing fails with "([^"]*)"$`, tc.pricingFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/order.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
