package services

// ServiceContainer holds instances of all the application services. It is the
// entry point for accessing service functionality, particularly from the
// handlers.
type ServiceContainer struct {
	Invoice  InvoiceSvcFacade
	Currency CurrencySvcFacade
}
