package ris

import "strconv"

// Mode is the declared request category. It selects which validation
// rules apply and is transmitted in the MODE field.
type Mode string

const (
	// ModeInquiry is an initial order inquiry.
	ModeInquiry Mode = "Q"

	// ModePhoneInquiry is an inquiry for a phone order.
	ModePhoneInquiry Mode = "P"

	// ModeUpdate updates a previously scored transaction.
	ModeUpdate Mode = "U"

	// ModeUpdateWithResponse updates a transaction and requests a
	// re-evaluated response.
	ModeUpdateWithResponse Mode = "X"
)

// Well-known RIS request field names.
const (
	FieldMode          = "MODE"
	FieldVersion       = "VERS"
	FieldMerchant      = "MERC"
	FieldSession       = "SESS"
	FieldSite          = "SITE"
	FieldCurrency      = "CURR"
	FieldTotal         = "TOTL"
	FieldMACK          = "MACK"
	FieldAuth          = "AUTH"
	FieldPaymentType   = "PTYP"
	FieldPaymentToken  = "PTOK"
	FieldCardLast4     = "LAST4"
	FieldIPAddress     = "IPAD"
	FieldEmail         = "EMAL"
	FieldPhone         = "ANID"
	FieldTransactionID = "TRAN"
)

// ProtocolVersion is the RIS interface version sent in VERS.
const ProtocolVersion = "0700"

// Request is one scoring request: an ordered field mapping plus the
// declared mode and the stream-handling flag. Create instances with
// NewInquiry or NewUpdate, populate them with the typed setters or Set,
// and pass them to Client.Process. A Request is not safe for concurrent
// mutation; it is read-only once handed to Process.
type Request struct {
	// Mode is the declared request category.
	Mode Mode

	// CloseOnFinish makes Process close the response stream after a
	// successful parse. When false the stream is retained on the
	// Response and the caller owns closing it.
	CloseOnFinish bool

	params *Params
}

// NewInquiry creates an inquiry request with MODE and VERS preset.
func NewInquiry() *Request {
	return newRequest(ModeInquiry)
}

// NewUpdate creates an update request with MODE and VERS preset.
func NewUpdate() *Request {
	return newRequest(ModeUpdate)
}

func newRequest(mode Mode) *Request {
	r := &Request{
		Mode:          mode,
		CloseOnFinish: true,
		params:        NewParams(),
	}
	r.params.Set(FieldVersion, ProtocolVersion)
	r.params.Set(FieldMode, string(mode))
	return r
}

// Params returns the request's field mapping. Validator and Transport
// read it; callers may keep mutating it until Process is called.
func (r *Request) Params() *Params {
	return r.params
}

// Set stores a raw field value. Use this for fields without a typed
// setter; the external rule set defines the full field catalogue.
func (r *Request) Set(name, value string) {
	r.params.Set(name, value)
}

// SetMode changes the declared mode and the transmitted MODE field.
func (r *Request) SetMode(mode Mode) {
	r.Mode = mode
	r.params.Set(FieldMode, string(mode))
}

// SetMerchant sets the six-digit merchant identifier.
func (r *Request) SetMerchant(id string) {
	r.params.Set(FieldMerchant, id)
}

// SetSession sets the unique session identifier for the transaction.
func (r *Request) SetSession(id string) {
	r.params.Set(FieldSession, id)
}

// SetSite sets the website identifier the order originated from.
func (r *Request) SetSite(site string) {
	r.params.Set(FieldSite, site)
}

// SetTotal sets the order total in the currency's lowest denomination.
func (r *Request) SetTotal(cents int64) {
	r.params.Set(FieldTotal, strconv.FormatInt(cents, 10))
}

// SetCurrency sets the three-letter ISO 4217 currency code.
func (r *Request) SetCurrency(code string) {
	r.params.Set(FieldCurrency, code)
}

// SetMerchantAck records whether the merchant acknowledges the RIS
// terms for this request (Y or N).
func (r *Request) SetMerchantAck(ack bool) {
	if ack {
		r.params.Set(FieldMACK, "Y")
	} else {
		r.params.Set(FieldMACK, "N")
	}
}

// SetAuthStatus sets the payment authorization status (A or D).
func (r *Request) SetAuthStatus(status string) {
	r.params.Set(FieldAuth, status)
}

// SetPaymentType sets the payment type code (e.g. CARD, PYPL, CHEK).
func (r *Request) SetPaymentType(ptyp string) {
	r.params.Set(FieldPaymentType, ptyp)
}

// SetPaymentToken sets the hashed payment token. Mutually exclusive
// with SetCardLast4.
func (r *Request) SetPaymentToken(token string) {
	r.params.Set(FieldPaymentToken, token)
}

// SetCardLast4 sets the last four digits of the card number. Mutually
// exclusive with SetPaymentToken.
func (r *Request) SetCardLast4(last4 string) {
	r.params.Set(FieldCardLast4, last4)
}

// SetIPAddress sets the customer's IP address.
func (r *Request) SetIPAddress(ip string) {
	r.params.Set(FieldIPAddress, ip)
}

// SetEmail sets the customer's email address.
func (r *Request) SetEmail(email string) {
	r.params.Set(FieldEmail, email)
}

// SetPhone sets the automatic number identification for phone orders.
func (r *Request) SetPhone(number string) {
	r.params.Set(FieldPhone, number)
}

// SetTransactionID sets the RIS transaction identifier being updated.
func (r *Request) SetTransactionID(id string) {
	r.params.Set(FieldTransactionID, id)
}
