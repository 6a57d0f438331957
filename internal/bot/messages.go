package bot

import (
	"fmt"
	"strings"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

// Bot copy. Kept together so the conversational voice stays consistent.

const msgWelcome = `Welcome to Delicious Bites Restaurant! 🍽️

I'm here to help you place your order. Please select an option:`

const msgMainOptions = `
Select 1 to Place an order
Select 99 to Checkout order
Select 98 to See order history
Select 97 to See current order
Select 0 to Cancel order`

const msgMenuHeader = `Here's our menu. Select an item number to add it to your order:`

const msgNoCurrentOrder = `You don't have any items in your current order.

Select 1 to Place an order`

const msgNoOrderToPlace = `No order to place. Your cart is empty.

Select 1 to Place an order`

const msgOrderCancelled = `Your order has been cancelled.

Select 1 to Place a new order`

const msgNoOrderToCancel = `You don't have any order to cancel.

Select 1 to Place an order`

const msgOrderHistoryHeader = `Your order history:`

const msgNoOrderHistory = `You haven't placed any orders yet.

Select 1 to Place an order`

const msgPaymentSuccess = `Payment successful! 🎉 Thank you for your order.

Your order is being prepared.

Select 1 to Place a new order`

const msgPaymentFailed = `Payment could not be verified. Please try again or contact support.

Select 99 to Try checkout again
Select 1 to Place a new order`

const msgInvalidOption = `Invalid option. Please select a valid option from the menu.`

const msgInvalidMenuItem = `Invalid item number. Please select a valid item from the menu.`

const msgSchedulingPrompt = `Would you like to schedule this order for later?

Select 1 for Yes, schedule for later
Select 2 for No, prepare now`

const msgScheduleTimePrompt = `Please enter the date and time for your order (e.g., "2024-12-25 14:30" or "tomorrow 2pm"):`

const msgScheduleRetry = `I couldn't understand that date. Please try again with a format like "2024-12-25 14:30" or "tomorrow 2pm".`

const msgSomethingWentWrong = `Something went wrong. Please try again.

Select 1 to Place an order`

func msgItemAdded(itemName string, quantity int) string {
	return fmt.Sprintf(`Added %dx %s to your order.

Select another item number to add more, or:
Select 99 to Checkout
Select 97 to See current order
Select 0 to Cancel order`, quantity, itemName)
}

func msgCurrentOrder(items string, total float64) string {
	return fmt.Sprintf(`Your current order:
%s

Total: %s

Select 1 to Add more items
Select 99 to Checkout
Select 0 to Cancel order`, items, models.FormatNaira(total))
}

func msgCheckoutSuccess(total float64) string {
	return fmt.Sprintf(`Order placed successfully! 🎉

Total Amount: %s

Please proceed to pay for your order.`, models.FormatNaira(total))
}

func msgAwaitingPayment(total float64) string {
	return fmt.Sprintf(`You have an order waiting for payment.

Total: %s

Please proceed to pay.`, models.FormatNaira(total))
}

func msgOrderTotal(total float64) string {
	return fmt.Sprintf("Order total: %s\n\n%s", models.FormatNaira(total), msgSchedulingPrompt)
}

func msgOrderScheduled(date string) string {
	return fmt.Sprintf(`Your order has been scheduled for %s.

Select 1 to Place another order`, date)
}

func msgPaymentInitialized(total float64) string {
	return fmt.Sprintf("Payment initialized. Total: %s\n\nRedirecting to payment page...", models.FormatNaira(total))
}

func formatOrderItems(items []models.OrderItem) string {
	if len(items) == 0 {
		return "No items"
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		lineTotal := item.Price * float64(item.Quantity)
		lines = append(lines, fmt.Sprintf("%d. %s x%d - %s", i+1, item.Name, item.Quantity, models.FormatNaira(lineTotal)))
	}
	return strings.Join(lines, "\n")
}

func formatHistory(orders []models.Order) string {
	var b strings.Builder
	b.WriteString(msgOrderHistoryHeader + "\n\n")

	for i, order := range orders {
		marker := ""
		switch order.Status {
		case models.OrderStatusPaid:
			marker = " ✅"
		case models.OrderStatusPlaced:
			marker = " ⏳"
		}

		fmt.Fprintf(&b, "%d. Order #%s%s\n", i+1, order.ShortID(), marker)
		fmt.Fprintf(&b, "   Date: %s\n", FormatScheduleDate(order.CreatedAt))
		fmt.Fprintf(&b, "   Items: %d\n", len(order.Items))
		fmt.Fprintf(&b, "   Total: %s\n", models.FormatNaira(order.TotalAmount))
		fmt.Fprintf(&b, "   Status: %s", strings.ToUpper(order.Status))
		if order.ScheduledFor != nil {
			fmt.Fprintf(&b, "\n   Scheduled: %s", FormatScheduleDate(*order.ScheduledFor))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("\nSelect 1 to Place a new order")
	return b.String()
}
