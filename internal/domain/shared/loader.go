package shared

// Load names a related entity that a repository read should eagerly fetch.
// Repositories translate these into preload clauses; unknown values are
// ignored by implementations that have no matching association.
type Load string

const (
	LoadAddress         Load = "Address"
	LoadDimensions      Load = "Dimensions"
	LoadCustomer        Load = "Customer"
	LoadCustomerAddress Load = "Customer.Address"
	LoadItems           Load = "Items"
	LoadShipmentAddress Load = "ShipmentAddress"
)
