package relay

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	partnerapp "github.com/wms/backend/internal/application/partner"
	tradeapp "github.com/wms/backend/internal/application/trade"
)

// feedDateFormat is the processing-date layout used by upstream feed
// files: day/month/year.
const feedDateFormat = "02/01/2006"

// feedAddress is the wire shape of an address inside any feed document.
type feedAddress struct {
	Street  string `xml:"Street"`
	City    string `xml:"City"`
	State   string `xml:"State"`
	ZipCode string `xml:"ZipCode"`
	Country string `xml:"Country"`
}

// feedCustomer is the wire shape of a customer, standalone or embedded in
// an order.
type feedCustomer struct {
	Name    string       `xml:"Name"`
	Email   string       `xml:"Email"`
	Address *feedAddress `xml:"Address"`
}

// feedOrderLine is one product reference inside an order document.
type feedOrderLine struct {
	ProductCode string `xml:"ProductCode"`
	Quantity    int    `xml:"Quantity"`
}

// customerFeed is the root document of the customer feed file.
type customerFeed struct {
	XMLName   xml.Name       `xml:"Customers"`
	Customers []feedCustomer `xml:"Customer"`
}

// productFeed is the root document of the product feed file.
type productFeed struct {
	XMLName  xml.Name      `xml:"Products"`
	Products []feedProduct `xml:"Product"`
}

type feedProduct struct {
	Code        string          `xml:"Code"`
	Title       string          `xml:"Title"`
	Description string          `xml:"Description"`
	Dimensions  *feedDimensions `xml:"Dimensions"`
}

type feedDimensions struct {
	Length float64 `xml:"Length"`
	Width  float64 `xml:"Width"`
	Height float64 `xml:"Height"`
	Weight float64 `xml:"Weight"`
}

// purchaseOrderFeed is the root document of the purchase order feed file.
type purchaseOrderFeed struct {
	XMLName xml.Name            `xml:"PurchaseOrders"`
	Orders  []feedPurchaseOrder `xml:"PurchaseOrder"`
}

type feedPurchaseOrder struct {
	ProcessingDate string          `xml:"ProcessingDate"`
	Customer       *feedCustomer   `xml:"Customer"`
	Products       []feedOrderLine `xml:"Products>Product"`
}

// salesOrderFeed is the root document of the sales order feed file.
type salesOrderFeed struct {
	XMLName xml.Name         `xml:"SalesOrders"`
	Orders  []feedSalesOrder `xml:"SalesOrder"`
}

type feedSalesOrder struct {
	ProcessingDate  string          `xml:"ProcessingDate"`
	Customer        *feedCustomer   `xml:"Customer"`
	ShipmentAddress *feedAddress    `xml:"ShipmentAddress"`
	Products        []feedOrderLine `xml:"Products>Product"`
}

// decodeFeedFile reads and unmarshals an XML feed document from disk.
func decodeFeedFile(path string, doc any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read feed file %s: %w", path, err)
	}
	if err := xml.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse feed file %s: %w", path, err)
	}
	return nil
}

func toAddressRequest(a *feedAddress) *partnerapp.AddressRequest {
	if a == nil {
		return nil
	}
	return &partnerapp.AddressRequest{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func toCustomerRequest(c *feedCustomer) *partnerapp.CustomerRequest {
	if c == nil {
		return nil
	}
	return &partnerapp.CustomerRequest{
		Name:    c.Name,
		Email:   c.Email,
		Address: toAddressRequest(c.Address),
	}
}

func toCustomerRequests(customers []feedCustomer) []partnerapp.CustomerRequest {
	requests := make([]partnerapp.CustomerRequest, 0, len(customers))
	for i := range customers {
		requests = append(requests, *toCustomerRequest(&customers[i]))
	}
	return requests
}

func toProductRequests(products []feedProduct) []catalogapp.ProductRequest {
	requests := make([]catalogapp.ProductRequest, 0, len(products))
	for _, p := range products {
		req := catalogapp.ProductRequest{
			Code:        p.Code,
			Title:       p.Title,
			Description: p.Description,
		}
		if p.Dimensions != nil {
			req.Dimensions = &catalogapp.DimensionsRequest{
				Length: p.Dimensions.Length,
				Width:  p.Dimensions.Width,
				Height: p.Dimensions.Height,
				Weight: p.Dimensions.Weight,
			}
		}
		requests = append(requests, req)
	}
	return requests
}

func toOrderItemRequests(lines []feedOrderLine) []tradeapp.OrderItemRequest {
	items := make([]tradeapp.OrderItemRequest, 0, len(lines))
	for _, line := range lines {
		items = append(items, tradeapp.OrderItemRequest{
			ProductCode: line.ProductCode,
			Quantity:    line.Quantity,
		})
	}
	return items
}

// toPurchaseOrderRequests converts the purchase order feed to API request
// shapes. A blank processing date stays unset; a malformed one fails the
// whole file, matching a strict-parse ingest.
func toPurchaseOrderRequests(orders []feedPurchaseOrder) ([]tradeapp.PurchaseOrderRequest, error) {
	requests := make([]tradeapp.PurchaseOrderRequest, 0, len(orders))
	for _, o := range orders {
		req := tradeapp.PurchaseOrderRequest{
			Customer: toCustomerRequest(o.Customer),
			Products: toOrderItemRequests(o.Products),
		}
		if o.ProcessingDate != "" {
			parsed, err := time.Parse(feedDateFormat, o.ProcessingDate)
			if err != nil {
				return nil, fmt.Errorf("invalid processing date %q: %w", o.ProcessingDate, err)
			}
			req.ProcessingDate = &parsed
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// toSalesOrderRequests converts the sales order feed to API request
// shapes. A blank processing date defaults to the current time.
func toSalesOrderRequests(orders []feedSalesOrder) ([]tradeapp.SalesOrderRequest, error) {
	requests := make([]tradeapp.SalesOrderRequest, 0, len(orders))
	for _, o := range orders {
		req := tradeapp.SalesOrderRequest{
			ProcessingDate:  time.Now().UTC(),
			Customer:        toCustomerRequest(o.Customer),
			ShipmentAddress: toAddressRequest(o.ShipmentAddress),
			Products:        toOrderItemRequests(o.Products),
		}
		if o.ProcessingDate != "" {
			parsed, err := time.Parse(feedDateFormat, o.ProcessingDate)
			if err != nil {
				return nil, fmt.Errorf("invalid processing date %q: %w", o.ProcessingDate, err)
			}
			req.ProcessingDate = parsed
		}
		requests = append(requests, req)
	}
	return requests, nil
}
