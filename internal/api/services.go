package api

// Service accessors group API methods by resource.
// Each service embeds a Requester so the same methods work against the network
// client and against a dry-run recorder.

type StudioService struct{ Requester }

type EventsService struct{ Requester }

type AlbumsService struct{ Requester }

type PhotosService struct{ Requester }

type OrdersService struct{ Requester }

type BrandsService struct{ Requester }

type ContactsService struct{ Requester }

type MobileAppsService struct{ Requester }

func (c *Client) Studio() StudioService { return StudioService{c} }

func (c *Client) Events() EventsService { return EventsService{c} }

func (c *Client) Albums() AlbumsService { return AlbumsService{c} }

func (c *Client) Photos() PhotosService { return PhotosService{c} }

func (c *Client) Orders() OrdersService { return OrdersService{c} }

func (c *Client) Brands() BrandsService { return BrandsService{c} }

func (c *Client) Contacts() ContactsService { return ContactsService{c} }

func (c *Client) MobileApps() MobileAppsService { return MobileAppsService{c} }

// Services bundles every resource service around one Requester.
type Services struct {
	Studio     StudioService
	Events     EventsService
	Albums     AlbumsService
	Photos     PhotosService
	Orders     OrdersService
	Brands     BrandsService
	Contacts   ContactsService
	MobileApps MobileAppsService
}

// NewServices wires all resource services to r.
func NewServices(r Requester) Services {
	return Services{
		Studio:     StudioService{r},
		Events:     EventsService{r},
		Albums:     AlbumsService{r},
		Photos:     PhotosService{r},
		Orders:     OrdersService{r},
		Brands:     BrandsService{r},
		Contacts:   ContactsService{r},
		MobileApps: MobileAppsService{r},
	}
}
