package application

import (
	fulfillmenttypes "github.com/CeDev0224/inventree/internal/domains/fulfillment/application/types"
)

// Canonical workflow notifications. The titles are part of the UI contract
// and must stay stable across clients.
func notifyItemFulfilled() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifySuccess,
		Title:   "Item Fulfilled",
		Message: "Item has been successfully fulfilled",
	}
}

func notifyFulfillFailed() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyError,
		Title:   "Failed to fulfill item",
		Message: "The backend rejected the fulfillment update",
	}
}

func notifyInvalidBarcode() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyError,
		Title:   "Invalid Barcode",
		Message: "Could not identify product from barcode",
	}
}

func notifyScanError() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyError,
		Title:   "Scan Error",
		Message: "Failed to process barcode scan",
	}
}

func notifyProductNotFound() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyError,
		Title:   "Product Not Found",
		Message: "No product found matching the entered SKU",
	}
}

func notifySearchError() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyError,
		Title:   "Search Error",
		Message: "Failed to search for product",
	}
}

func notifyNoItemsToFulfill() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyInfo,
		Title:   "No Items to Fulfill",
		Message: "All items in this order have been fulfilled",
	}
}

func notifyMarkedUnavailable() fulfillmenttypes.Notification {
	return fulfillmenttypes.Notification{
		Kind:    fulfillmenttypes.NotifyWarning,
		Title:   "Item Marked Unavailable",
		Message: "Item has been marked as unavailable",
	}
}
