// Code generated by ogen, DO NOT EDIT.

package oas

import (
	"fmt"
	"time"
)

func (s *ErrorStatusCode) Error() string {
	return fmt.Sprintf("code %d: %+v", s.StatusCode, s.Response)
}

type APIKey struct {
	APIKey string
	Roles  []string
}

// GetAPIKey returns the value of APIKey.
func (s *APIKey) GetAPIKey() string {
	return s.APIKey
}

// GetRoles returns the value of Roles.
func (s *APIKey) GetRoles() []string {
	return s.Roles
}

// SetAPIKey sets the value of APIKey.
func (s *APIKey) SetAPIKey(val string) {
	s.APIKey = val
}

// SetRoles sets the value of Roles.
func (s *APIKey) SetRoles(val []string) {
	s.Roles = val
}

type BearerAuth struct {
	Token string
	Roles []string
}

// GetToken returns the value of Token.
func (s *BearerAuth) GetToken() string {
	return s.Token
}

// GetRoles returns the value of Roles.
func (s *BearerAuth) GetRoles() []string {
	return s.Roles
}

// SetToken sets the value of Token.
func (s *BearerAuth) SetToken(val string) {
	s.Token = val
}

// SetRoles sets the value of Roles.
func (s *BearerAuth) SetRoles(val []string) {
	s.Roles = val
}

// Ref: #/components/schemas/CartItem
type CartItem struct {
	ProductId string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
	// Price the client displayed. A stale price fails the checkout.
	UnitPrice OptFloat64 `json:"unitPrice"`
}

// GetProductId returns the value of ProductId.
func (s *CartItem) GetProductId() string {
	return s.ProductId
}

// GetSize returns the value of Size.
func (s *CartItem) GetSize() string {
	return s.Size
}

// GetQty returns the value of Qty.
func (s *CartItem) GetQty() int {
	return s.Qty
}

// GetUnitPrice returns the value of UnitPrice.
func (s *CartItem) GetUnitPrice() OptFloat64 {
	return s.UnitPrice
}

// SetProductId sets the value of ProductId.
func (s *CartItem) SetProductId(val string) {
	s.ProductId = val
}

// SetSize sets the value of Size.
func (s *CartItem) SetSize(val string) {
	s.Size = val
}

// SetQty sets the value of Qty.
func (s *CartItem) SetQty(val int) {
	s.Qty = val
}

// SetUnitPrice sets the value of UnitPrice.
func (s *CartItem) SetUnitPrice(val OptFloat64) {
	s.UnitPrice = val
}

// Ref: #/components/schemas/Coupon
type Coupon struct {
	Code           string      `json:"code"`
	DiscountCodeId string      `json:"discountCodeId"`
	State          string      `json:"state"`
	SavedAt        time.Time   `json:"savedAt"`
	UsedAt         OptDateTime `json:"usedAt"`
}

// GetCode returns the value of Code.
func (s *Coupon) GetCode() string {
	return s.Code
}

// GetDiscountCodeId returns the value of DiscountCodeId.
func (s *Coupon) GetDiscountCodeId() string {
	return s.DiscountCodeId
}

// GetState returns the value of State.
func (s *Coupon) GetState() string {
	return s.State
}

// GetSavedAt returns the value of SavedAt.
func (s *Coupon) GetSavedAt() time.Time {
	return s.SavedAt
}

// GetUsedAt returns the value of UsedAt.
func (s *Coupon) GetUsedAt() OptDateTime {
	return s.UsedAt
}

// SetCode sets the value of Code.
func (s *Coupon) SetCode(val string) {
	s.Code = val
}

// SetDiscountCodeId sets the value of DiscountCodeId.
func (s *Coupon) SetDiscountCodeId(val string) {
	s.DiscountCodeId = val
}

// SetState sets the value of State.
func (s *Coupon) SetState(val string) {
	s.State = val
}

// SetSavedAt sets the value of SavedAt.
func (s *Coupon) SetSavedAt(val time.Time) {
	s.SavedAt = val
}

// SetUsedAt sets the value of UsedAt.
func (s *Coupon) SetUsedAt(val OptDateTime) {
	s.UsedAt = val
}

// Ref: #/components/schemas/Discount
type Discount struct {
	Code               string    `json:"code"`
	Percentage         float64   `json:"percentage"`
	MinimumOrderAmount float64   `json:"minimumOrderAmount"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	RemainingUses      int       `json:"remainingUses"`
}

// GetCode returns the value of Code.
func (s *Discount) GetCode() string {
	return s.Code
}

// GetPercentage returns the value of Percentage.
func (s *Discount) GetPercentage() float64 {
	return s.Percentage
}

// GetMinimumOrderAmount returns the value of MinimumOrderAmount.
func (s *Discount) GetMinimumOrderAmount() float64 {
	return s.MinimumOrderAmount
}

// GetStartDate returns the value of StartDate.
func (s *Discount) GetStartDate() time.Time {
	return s.StartDate
}

// GetEndDate returns the value of EndDate.
func (s *Discount) GetEndDate() time.Time {
	return s.EndDate
}

// GetRemainingUses returns the value of RemainingUses.
func (s *Discount) GetRemainingUses() int {
	return s.RemainingUses
}

// SetCode sets the value of Code.
func (s *Discount) SetCode(val string) {
	s.Code = val
}

// SetPercentage sets the value of Percentage.
func (s *Discount) SetPercentage(val float64) {
	s.Percentage = val
}

// SetMinimumOrderAmount sets the value of MinimumOrderAmount.
func (s *Discount) SetMinimumOrderAmount(val float64) {
	s.MinimumOrderAmount = val
}

// SetStartDate sets the value of StartDate.
func (s *Discount) SetStartDate(val time.Time) {
	s.StartDate = val
}

// SetEndDate sets the value of EndDate.
func (s *Discount) SetEndDate(val time.Time) {
	s.EndDate = val
}

// SetRemainingUses sets the value of RemainingUses.
func (s *Discount) SetRemainingUses(val int) {
	s.RemainingUses = val
}

// Ref: #/components/schemas/DiscountValidation
type DiscountValidation struct {
	Valid    bool     `json:"valid"`
	Discount Discount `json:"discount"`
}

// GetValid returns the value of Valid.
func (s *DiscountValidation) GetValid() bool {
	return s.Valid
}

// GetDiscount returns the value of Discount.
func (s *DiscountValidation) GetDiscount() Discount {
	return s.Discount
}

// SetValid sets the value of Valid.
func (s *DiscountValidation) SetValid(val bool) {
	s.Valid = val
}

// SetDiscount sets the value of Discount.
func (s *DiscountValidation) SetDiscount(val Discount) {
	s.Discount = val
}

// Ref: #/components/schemas/Error
type Error struct {
	// Stable machine-readable code.
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details OptErrorDetails `json:"details"`
}

// GetCode returns the value of Code.
func (s *Error) GetCode() string {
	return s.Code
}

// GetMessage returns the value of Message.
func (s *Error) GetMessage() string {
	return s.Message
}

// GetDetails returns the value of Details.
func (s *Error) GetDetails() OptErrorDetails {
	return s.Details
}

// SetCode sets the value of Code.
func (s *Error) SetCode(val string) {
	s.Code = val
}

// SetMessage sets the value of Message.
func (s *Error) SetMessage(val string) {
	s.Message = val
}

// SetDetails sets the value of Details.
func (s *Error) SetDetails(val OptErrorDetails) {
	s.Details = val
}

// Ref: #/components/schemas/ErrorDetails
type ErrorDetails map[string]string

func (s *ErrorDetails) init() ErrorDetails {
	m := *s
	if m == nil {
		m = map[string]string{}
		*s = m
	}
	return m
}

// ErrorStatusCode wraps Error with StatusCode.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

// GetStatusCode returns the value of StatusCode.
func (s *ErrorStatusCode) GetStatusCode() int {
	return s.StatusCode
}

// GetResponse returns the value of Response.
func (s *ErrorStatusCode) GetResponse() Error {
	return s.Response
}

// SetStatusCode sets the value of StatusCode.
func (s *ErrorStatusCode) SetStatusCode(val int) {
	s.StatusCode = val
}

// SetResponse sets the value of Response.
func (s *ErrorStatusCode) SetResponse(val Error) {
	s.Response = val
}

// Ref: #/components/schemas/LineItem
type LineItem struct {
	ProductId string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// GetProductId returns the value of ProductId.
func (s *LineItem) GetProductId() string {
	return s.ProductId
}

// GetName returns the value of Name.
func (s *LineItem) GetName() string {
	return s.Name
}

// GetSize returns the value of Size.
func (s *LineItem) GetSize() string {
	return s.Size
}

// GetQty returns the value of Qty.
func (s *LineItem) GetQty() int {
	return s.Qty
}

// GetUnitPrice returns the value of UnitPrice.
func (s *LineItem) GetUnitPrice() float64 {
	return s.UnitPrice
}

// GetSubtotal returns the value of Subtotal.
func (s *LineItem) GetSubtotal() float64 {
	return s.Subtotal
}

// SetProductId sets the value of ProductId.
func (s *LineItem) SetProductId(val string) {
	s.ProductId = val
}

// SetName sets the value of Name.
func (s *LineItem) SetName(val string) {
	s.Name = val
}

// SetSize sets the value of Size.
func (s *LineItem) SetSize(val string) {
	s.Size = val
}

// SetQty sets the value of Qty.
func (s *LineItem) SetQty(val int) {
	s.Qty = val
}

// SetUnitPrice sets the value of UnitPrice.
func (s *LineItem) SetUnitPrice(val float64) {
	s.UnitPrice = val
}

// SetSubtotal sets the value of Subtotal.
func (s *LineItem) SetSubtotal(val float64) {
	s.Subtotal = val
}

// NewOptDateTime returns new OptDateTime with value set to v.
func NewOptDateTime(v time.Time) OptDateTime {
	return OptDateTime{
		Value: v,
		Set:   true,
	}
}

// OptDateTime is optional time.Time.
type OptDateTime struct {
	Value time.Time
	Set   bool
}

// IsSet returns true if OptDateTime was set.
func (o OptDateTime) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptDateTime) Reset() {
	var v time.Time
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptDateTime) SetTo(v time.Time) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptDateTime) Get() (v time.Time, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptDateTime) Or(d time.Time) time.Time {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptDiscount returns new OptDiscount with value set to v.
func NewOptDiscount(v Discount) OptDiscount {
	return OptDiscount{
		Value: v,
		Set:   true,
	}
}

// OptDiscount is optional Discount.
type OptDiscount struct {
	Value Discount
	Set   bool
}

// IsSet returns true if OptDiscount was set.
func (o OptDiscount) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptDiscount) Reset() {
	var v Discount
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptDiscount) SetTo(v Discount) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptDiscount) Get() (v Discount, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptDiscount) Or(d Discount) Discount {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptErrorDetails returns new OptErrorDetails with value set to v.
func NewOptErrorDetails(v ErrorDetails) OptErrorDetails {
	return OptErrorDetails{
		Value: v,
		Set:   true,
	}
}

// OptErrorDetails is optional ErrorDetails.
type OptErrorDetails struct {
	Value ErrorDetails
	Set   bool
}

// IsSet returns true if OptErrorDetails was set.
func (o OptErrorDetails) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptErrorDetails) Reset() {
	var v ErrorDetails
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptErrorDetails) SetTo(v ErrorDetails) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptErrorDetails) Get() (v ErrorDetails, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptErrorDetails) Or(d ErrorDetails) ErrorDetails {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptFloat64 returns new OptFloat64 with value set to v.
func NewOptFloat64(v float64) OptFloat64 {
	return OptFloat64{
		Value: v,
		Set:   true,
	}
}

// OptFloat64 is optional float64.
type OptFloat64 struct {
	Value float64
	Set   bool
}

// IsSet returns true if OptFloat64 was set.
func (o OptFloat64) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptFloat64) Reset() {
	var v float64
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptFloat64) SetTo(v float64) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptFloat64) Get() (v float64, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptFloat64) Or(d float64) float64 {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptPayment returns new OptPayment with value set to v.
func NewOptPayment(v Payment) OptPayment {
	return OptPayment{
		Value: v,
		Set:   true,
	}
}

// OptPayment is optional Payment.
type OptPayment struct {
	Value Payment
	Set   bool
}

// IsSet returns true if OptPayment was set.
func (o OptPayment) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptPayment) Reset() {
	var v Payment
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptPayment) SetTo(v Payment) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptPayment) Get() (v Payment, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptPayment) Or(d Payment) Payment {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// NewOptString returns new OptString with value set to v.
func NewOptString(v string) OptString {
	return OptString{
		Value: v,
		Set:   true,
	}
}

// OptString is optional string.
type OptString struct {
	Value string
	Set   bool
}

// IsSet returns true if OptString was set.
func (o OptString) IsSet() bool { return o.Set }

// Reset unsets value.
func (o *OptString) Reset() {
	var v string
	o.Value = v
	o.Set = false
}

// SetTo sets value to v.
func (o *OptString) SetTo(v string) {
	o.Set = true
	o.Value = v
}

// Get returns value and boolean that denotes whether value was set.
func (o OptString) Get() (v string, ok bool) {
	if !o.Set {
		return v, false
	}
	return o.Value, true
}

// Or returns value if set, or given parameter if does not.
func (o OptString) Or(d string) string {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// Ref: #/components/schemas/Order
type Order struct {
	ID                  string      `json:"id"`
	UserId              string      `json:"userId"`
	Items               []LineItem  `json:"items"`
	Currency            string      `json:"currency"`
	ItemsPrice          float64     `json:"itemsPrice"`
	DiscountPercentage  float64     `json:"discountPercentage"`
	DiscountAmount      float64     `json:"discountAmount"`
	AmountAfterDiscount float64     `json:"amountAfterDiscount"`
	ShippingPrice       float64     `json:"shippingPrice"`
	TotalPrice          float64     `json:"totalPrice"`
	FormattedTotal      string      `json:"formattedTotal"`
	DiscountCode        OptString   `json:"discountCode"`
	Shipping            Shipping    `json:"shipping"`
	PaymentMethod       string      `json:"paymentMethod"`
	Status              string      `json:"status"`
	IsPaid              bool        `json:"isPaid"`
	Payment             OptPayment  `json:"payment"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	DeliveredAt         OptDateTime `json:"deliveredAt"`
}

// GetID returns the value of ID.
func (s *Order) GetID() string {
	return s.ID
}

// GetUserId returns the value of UserId.
func (s *Order) GetUserId() string {
	return s.UserId
}

// GetItems returns the value of Items.
func (s *Order) GetItems() []LineItem {
	return s.Items
}

// GetCurrency returns the value of Currency.
func (s *Order) GetCurrency() string {
	return s.Currency
}

// GetItemsPrice returns the value of ItemsPrice.
func (s *Order) GetItemsPrice() float64 {
	return s.ItemsPrice
}

// GetDiscountPercentage returns the value of DiscountPercentage.
func (s *Order) GetDiscountPercentage() float64 {
	return s.DiscountPercentage
}

// GetDiscountAmount returns the value of DiscountAmount.
func (s *Order) GetDiscountAmount() float64 {
	return s.DiscountAmount
}

// GetAmountAfterDiscount returns the value of AmountAfterDiscount.
func (s *Order) GetAmountAfterDiscount() float64 {
	return s.AmountAfterDiscount
}

// GetShippingPrice returns the value of ShippingPrice.
func (s *Order) GetShippingPrice() float64 {
	return s.ShippingPrice
}

// GetTotalPrice returns the value of TotalPrice.
func (s *Order) GetTotalPrice() float64 {
	return s.TotalPrice
}

// GetFormattedTotal returns the value of FormattedTotal.
func (s *Order) GetFormattedTotal() string {
	return s.FormattedTotal
}

// GetDiscountCode returns the value of DiscountCode.
func (s *Order) GetDiscountCode() OptString {
	return s.DiscountCode
}

// GetShipping returns the value of Shipping.
func (s *Order) GetShipping() Shipping {
	return s.Shipping
}

// GetPaymentMethod returns the value of PaymentMethod.
func (s *Order) GetPaymentMethod() string {
	return s.PaymentMethod
}

// GetStatus returns the value of Status.
func (s *Order) GetStatus() string {
	return s.Status
}

// GetIsPaid returns the value of IsPaid.
func (s *Order) GetIsPaid() bool {
	return s.IsPaid
}

// GetPayment returns the value of Payment.
func (s *Order) GetPayment() OptPayment {
	return s.Payment
}

// GetCreatedAt returns the value of CreatedAt.
func (s *Order) GetCreatedAt() time.Time {
	return s.CreatedAt
}

// GetUpdatedAt returns the value of UpdatedAt.
func (s *Order) GetUpdatedAt() time.Time {
	return s.UpdatedAt
}

// GetDeliveredAt returns the value of DeliveredAt.
func (s *Order) GetDeliveredAt() OptDateTime {
	return s.DeliveredAt
}

// SetID sets the value of ID.
func (s *Order) SetID(val string) {
	s.ID = val
}

// SetUserId sets the value of UserId.
func (s *Order) SetUserId(val string) {
	s.UserId = val
}

// SetItems sets the value of Items.
func (s *Order) SetItems(val []LineItem) {
	s.Items = val
}

// SetCurrency sets the value of Currency.
func (s *Order) SetCurrency(val string) {
	s.Currency = val
}

// SetItemsPrice sets the value of ItemsPrice.
func (s *Order) SetItemsPrice(val float64) {
	s.ItemsPrice = val
}

// SetDiscountPercentage sets the value of DiscountPercentage.
func (s *Order) SetDiscountPercentage(val float64) {
	s.DiscountPercentage = val
}

// SetDiscountAmount sets the value of DiscountAmount.
func (s *Order) SetDiscountAmount(val float64) {
	s.DiscountAmount = val
}

// SetAmountAfterDiscount sets the value of AmountAfterDiscount.
func (s *Order) SetAmountAfterDiscount(val float64) {
	s.AmountAfterDiscount = val
}

// SetShippingPrice sets the value of ShippingPrice.
func (s *Order) SetShippingPrice(val float64) {
	s.ShippingPrice = val
}

// SetTotalPrice sets the value of TotalPrice.
func (s *Order) SetTotalPrice(val float64) {
	s.TotalPrice = val
}

// SetFormattedTotal sets the value of FormattedTotal.
func (s *Order) SetFormattedTotal(val string) {
	s.FormattedTotal = val
}

// SetDiscountCode sets the value of DiscountCode.
func (s *Order) SetDiscountCode(val OptString) {
	s.DiscountCode = val
}

// SetShipping sets the value of Shipping.
func (s *Order) SetShipping(val Shipping) {
	s.Shipping = val
}

// SetPaymentMethod sets the value of PaymentMethod.
func (s *Order) SetPaymentMethod(val string) {
	s.PaymentMethod = val
}

// SetStatus sets the value of Status.
func (s *Order) SetStatus(val string) {
	s.Status = val
}

// SetIsPaid sets the value of IsPaid.
func (s *Order) SetIsPaid(val bool) {
	s.IsPaid = val
}

// SetPayment sets the value of Payment.
func (s *Order) SetPayment(val OptPayment) {
	s.Payment = val
}

// SetCreatedAt sets the value of CreatedAt.
func (s *Order) SetCreatedAt(val time.Time) {
	s.CreatedAt = val
}

// SetUpdatedAt sets the value of UpdatedAt.
func (s *Order) SetUpdatedAt(val time.Time) {
	s.UpdatedAt = val
}

// SetDeliveredAt sets the value of DeliveredAt.
func (s *Order) SetDeliveredAt(val OptDateTime) {
	s.DeliveredAt = val
}

// Ref: #/components/schemas/Payment
type Payment struct {
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	PayerEmail string    `json:"payerEmail"`
	PaidAt     time.Time `json:"paidAt"`
}

// GetMethod returns the value of Method.
func (s *Payment) GetMethod() string {
	return s.Method
}

// GetReference returns the value of Reference.
func (s *Payment) GetReference() string {
	return s.Reference
}

// GetPayerEmail returns the value of PayerEmail.
func (s *Payment) GetPayerEmail() string {
	return s.PayerEmail
}

// GetPaidAt returns the value of PaidAt.
func (s *Payment) GetPaidAt() time.Time {
	return s.PaidAt
}

// SetMethod sets the value of Method.
func (s *Payment) SetMethod(val string) {
	s.Method = val
}

// SetReference sets the value of Reference.
func (s *Payment) SetReference(val string) {
	s.Reference = val
}

// SetPayerEmail sets the value of PayerEmail.
func (s *Payment) SetPayerEmail(val string) {
	s.PayerEmail = val
}

// SetPaidAt sets the value of PaidAt.
func (s *Payment) SetPaidAt(val time.Time) {
	s.PaidAt = val
}

// Ref: #/components/schemas/PaymentRequest
type PaymentRequest struct {
	Method     string      `json:"method"`
	Reference  OptString   `json:"reference"`
	PayerEmail OptString   `json:"payerEmail"`
	PaidAt     OptDateTime `json:"paidAt"`
}

// GetMethod returns the value of Method.
func (s *PaymentRequest) GetMethod() string {
	return s.Method
}

// GetReference returns the value of Reference.
func (s *PaymentRequest) GetReference() OptString {
	return s.Reference
}

// GetPayerEmail returns the value of PayerEmail.
func (s *PaymentRequest) GetPayerEmail() OptString {
	return s.PayerEmail
}

// GetPaidAt returns the value of PaidAt.
func (s *PaymentRequest) GetPaidAt() OptDateTime {
	return s.PaidAt
}

// SetMethod sets the value of Method.
func (s *PaymentRequest) SetMethod(val string) {
	s.Method = val
}

// SetReference sets the value of Reference.
func (s *PaymentRequest) SetReference(val OptString) {
	s.Reference = val
}

// SetPayerEmail sets the value of PayerEmail.
func (s *PaymentRequest) SetPayerEmail(val OptString) {
	s.PayerEmail = val
}

// SetPaidAt sets the value of PaidAt.
func (s *PaymentRequest) SetPaidAt(val OptDateTime) {
	s.PaidAt = val
}

// Ref: #/components/schemas/PlaceOrderRequest
type PlaceOrderRequest struct {
	Items        []CartItem `json:"items"`
	DiscountCode OptString  `json:"discountCode"`
	// Total the client displayed, checked within half a minor unit.
	ExpectedTotal OptFloat64 `json:"expectedTotal"`
	Shipping      Shipping   `json:"shipping"`
	// Cod or paypal.
	PaymentMethod string `json:"paymentMethod"`
}

// GetItems returns the value of Items.
func (s *PlaceOrderRequest) GetItems() []CartItem {
	return s.Items
}

// GetDiscountCode returns the value of DiscountCode.
func (s *PlaceOrderRequest) GetDiscountCode() OptString {
	return s.DiscountCode
}

// GetExpectedTotal returns the value of ExpectedTotal.
func (s *PlaceOrderRequest) GetExpectedTotal() OptFloat64 {
	return s.ExpectedTotal
}

// GetShipping returns the value of Shipping.
func (s *PlaceOrderRequest) GetShipping() Shipping {
	return s.Shipping
}

// GetPaymentMethod returns the value of PaymentMethod.
func (s *PlaceOrderRequest) GetPaymentMethod() string {
	return s.PaymentMethod
}

// SetItems sets the value of Items.
func (s *PlaceOrderRequest) SetItems(val []CartItem) {
	s.Items = val
}

// SetDiscountCode sets the value of DiscountCode.
func (s *PlaceOrderRequest) SetDiscountCode(val OptString) {
	s.DiscountCode = val
}

// SetExpectedTotal sets the value of ExpectedTotal.
func (s *PlaceOrderRequest) SetExpectedTotal(val OptFloat64) {
	s.ExpectedTotal = val
}

// SetShipping sets the value of Shipping.
func (s *PlaceOrderRequest) SetShipping(val Shipping) {
	s.Shipping = val
}

// SetPaymentMethod sets the value of PaymentMethod.
func (s *PlaceOrderRequest) SetPaymentMethod(val string) {
	s.PaymentMethod = val
}

// Ref: #/components/schemas/Product
type Product struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    float64      `json:"price"`
	Category string       `json:"category"`
	Image    ProductImage `json:"image"`
	Sizes    []SizeStock  `json:"sizes"`
}

// GetID returns the value of ID.
func (s *Product) GetID() string {
	return s.ID
}

// GetName returns the value of Name.
func (s *Product) GetName() string {
	return s.Name
}

// GetPrice returns the value of Price.
func (s *Product) GetPrice() float64 {
	return s.Price
}

// GetCategory returns the value of Category.
func (s *Product) GetCategory() string {
	return s.Category
}

// GetImage returns the value of Image.
func (s *Product) GetImage() ProductImage {
	return s.Image
}

// GetSizes returns the value of Sizes.
func (s *Product) GetSizes() []SizeStock {
	return s.Sizes
}

// SetID sets the value of ID.
func (s *Product) SetID(val string) {
	s.ID = val
}

// SetName sets the value of Name.
func (s *Product) SetName(val string) {
	s.Name = val
}

// SetPrice sets the value of Price.
func (s *Product) SetPrice(val float64) {
	s.Price = val
}

// SetCategory sets the value of Category.
func (s *Product) SetCategory(val string) {
	s.Category = val
}

// SetImage sets the value of Image.
func (s *Product) SetImage(val ProductImage) {
	s.Image = val
}

// SetSizes sets the value of Sizes.
func (s *Product) SetSizes(val []SizeStock) {
	s.Sizes = val
}

// Ref: #/components/schemas/ProductImage
type ProductImage struct {
	Thumbnail string `json:"thumbnail"`
	Mobile    string `json:"mobile"`
	Tablet    string `json:"tablet"`
	Desktop   string `json:"desktop"`
}

// GetThumbnail returns the value of Thumbnail.
func (s *ProductImage) GetThumbnail() string {
	return s.Thumbnail
}

// GetMobile returns the value of Mobile.
func (s *ProductImage) GetMobile() string {
	return s.Mobile
}

// GetTablet returns the value of Tablet.
func (s *ProductImage) GetTablet() string {
	return s.Tablet
}

// GetDesktop returns the value of Desktop.
func (s *ProductImage) GetDesktop() string {
	return s.Desktop
}

// SetThumbnail sets the value of Thumbnail.
func (s *ProductImage) SetThumbnail(val string) {
	s.Thumbnail = val
}

// SetMobile sets the value of Mobile.
func (s *ProductImage) SetMobile(val string) {
	s.Mobile = val
}

// SetTablet sets the value of Tablet.
func (s *ProductImage) SetTablet(val string) {
	s.Tablet = val
}

// SetDesktop sets the value of Desktop.
func (s *ProductImage) SetDesktop(val string) {
	s.Desktop = val
}

// Ref: #/components/schemas/Quote
type Quote struct {
	Items               []LineItem  `json:"items"`
	Currency            string      `json:"currency"`
	ItemsPrice          float64     `json:"itemsPrice"`
	DiscountPercentage  float64     `json:"discountPercentage"`
	DiscountAmount      float64     `json:"discountAmount"`
	AmountAfterDiscount float64     `json:"amountAfterDiscount"`
	ShippingPrice       float64     `json:"shippingPrice"`
	TotalPrice          float64     `json:"totalPrice"`
	FormattedTotal      string      `json:"formattedTotal"`
	Discount            OptDiscount `json:"discount"`
}

// GetItems returns the value of Items.
func (s *Quote) GetItems() []LineItem {
	return s.Items
}

// GetCurrency returns the value of Currency.
func (s *Quote) GetCurrency() string {
	return s.Currency
}

// GetItemsPrice returns the value of ItemsPrice.
func (s *Quote) GetItemsPrice() float64 {
	return s.ItemsPrice
}

// GetDiscountPercentage returns the value of DiscountPercentage.
func (s *Quote) GetDiscountPercentage() float64 {
	return s.DiscountPercentage
}

// GetDiscountAmount returns the value of DiscountAmount.
func (s *Quote) GetDiscountAmount() float64 {
	return s.DiscountAmount
}

// GetAmountAfterDiscount returns the value of AmountAfterDiscount.
func (s *Quote) GetAmountAfterDiscount() float64 {
	return s.AmountAfterDiscount
}

// GetShippingPrice returns the value of ShippingPrice.
func (s *Quote) GetShippingPrice() float64 {
	return s.ShippingPrice
}

// GetTotalPrice returns the value of TotalPrice.
func (s *Quote) GetTotalPrice() float64 {
	return s.TotalPrice
}

// GetFormattedTotal returns the value of FormattedTotal.
func (s *Quote) GetFormattedTotal() string {
	return s.FormattedTotal
}

// GetDiscount returns the value of Discount.
func (s *Quote) GetDiscount() OptDiscount {
	return s.Discount
}

// SetItems sets the value of Items.
func (s *Quote) SetItems(val []LineItem) {
	s.Items = val
}

// SetCurrency sets the value of Currency.
func (s *Quote) SetCurrency(val string) {
	s.Currency = val
}

// SetItemsPrice sets the value of ItemsPrice.
func (s *Quote) SetItemsPrice(val float64) {
	s.ItemsPrice = val
}

// SetDiscountPercentage sets the value of DiscountPercentage.
func (s *Quote) SetDiscountPercentage(val float64) {
	s.DiscountPercentage = val
}

// SetDiscountAmount sets the value of DiscountAmount.
func (s *Quote) SetDiscountAmount(val float64) {
	s.DiscountAmount = val
}

// SetAmountAfterDiscount sets the value of AmountAfterDiscount.
func (s *Quote) SetAmountAfterDiscount(val float64) {
	s.AmountAfterDiscount = val
}

// SetShippingPrice sets the value of ShippingPrice.
func (s *Quote) SetShippingPrice(val float64) {
	s.ShippingPrice = val
}

// SetTotalPrice sets the value of TotalPrice.
func (s *Quote) SetTotalPrice(val float64) {
	s.TotalPrice = val
}

// SetFormattedTotal sets the value of FormattedTotal.
func (s *Quote) SetFormattedTotal(val string) {
	s.FormattedTotal = val
}

// SetDiscount sets the value of Discount.
func (s *Quote) SetDiscount(val OptDiscount) {
	s.Discount = val
}

// Ref: #/components/schemas/QuoteRequest
type QuoteRequest struct {
	Items        []CartItem `json:"items"`
	DiscountCode OptString  `json:"discountCode"`
}

// GetItems returns the value of Items.
func (s *QuoteRequest) GetItems() []CartItem {
	return s.Items
}

// GetDiscountCode returns the value of DiscountCode.
func (s *QuoteRequest) GetDiscountCode() OptString {
	return s.DiscountCode
}

// SetItems sets the value of Items.
func (s *QuoteRequest) SetItems(val []CartItem) {
	s.Items = val
}

// SetDiscountCode sets the value of DiscountCode.
func (s *QuoteRequest) SetDiscountCode(val OptString) {
	s.DiscountCode = val
}

// Ref: #/components/schemas/Shipping
type Shipping struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// GetFullName returns the value of FullName.
func (s *Shipping) GetFullName() string {
	return s.FullName
}

// GetPhone returns the value of Phone.
func (s *Shipping) GetPhone() string {
	return s.Phone
}

// GetAddress returns the value of Address.
func (s *Shipping) GetAddress() string {
	return s.Address
}

// GetCity returns the value of City.
func (s *Shipping) GetCity() string {
	return s.City
}

// GetPostalCode returns the value of PostalCode.
func (s *Shipping) GetPostalCode() string {
	return s.PostalCode
}

// GetCountry returns the value of Country.
func (s *Shipping) GetCountry() string {
	return s.Country
}

// SetFullName sets the value of FullName.
func (s *Shipping) SetFullName(val string) {
	s.FullName = val
}

// SetPhone sets the value of Phone.
func (s *Shipping) SetPhone(val string) {
	s.Phone = val
}

// SetAddress sets the value of Address.
func (s *Shipping) SetAddress(val string) {
	s.Address = val
}

// SetCity sets the value of City.
func (s *Shipping) SetCity(val string) {
	s.City = val
}

// SetPostalCode sets the value of PostalCode.
func (s *Shipping) SetPostalCode(val string) {
	s.PostalCode = val
}

// SetCountry sets the value of Country.
func (s *Shipping) SetCountry(val string) {
	s.Country = val
}

// Ref: #/components/schemas/SizeStock
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// GetSize returns the value of Size.
func (s *SizeStock) GetSize() string {
	return s.Size
}

// GetStock returns the value of Stock.
func (s *SizeStock) GetStock() int {
	return s.Stock
}

// SetSize sets the value of Size.
func (s *SizeStock) SetSize(val string) {
	s.Size = val
}

// SetStock sets the value of Stock.
func (s *SizeStock) SetStock(val int) {
	s.Stock = val
}

// Ref: #/components/schemas/StatusUpdate
type StatusUpdate struct {
	// Placed, packing, shipped, out_for_delivery, delivered or cancelled.
	Status string `json:"status"`
}

// GetStatus returns the value of Status.
func (s *StatusUpdate) GetStatus() string {
	return s.Status
}

// SetStatus sets the value of Status.
func (s *StatusUpdate) SetStatus(val string) {
	s.Status = val
}

// Ref: #/components/schemas/ValidateDiscountRequest
type ValidateDiscountRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"orderAmount"`
}

// GetCode returns the value of Code.
func (s *ValidateDiscountRequest) GetCode() string {
	return s.Code
}

// GetOrderAmount returns the value of OrderAmount.
func (s *ValidateDiscountRequest) GetOrderAmount() float64 {
	return s.OrderAmount
}

// SetCode sets the value of Code.
func (s *ValidateDiscountRequest) SetCode(val string) {
	s.Code = val
}

// SetOrderAmount sets the value of OrderAmount.
func (s *ValidateDiscountRequest) SetOrderAmount(val float64) {
	s.OrderAmount = val
}
