// Package shopdto - DTO cho catalog (cities, shops, products, wallets).
package shopdto

// CityCreateInput dùng cho tạo thành phố.
type CityCreateInput struct {
	Name     string `json:"name" validate:"required,no_xss"`
	IsActive bool   `json:"isActive"`
}

// CityUpdateInput dùng cho cập nhật thành phố.
type CityUpdateInput struct {
	Name     string `json:"name" validate:"omitempty,no_xss"`
	IsActive bool   `json:"isActive"`
}

// ShopCreateInput dùng cho tạo shop.
type ShopCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	CityID      string `json:"cityId" validate:"required,objectid"`
	IsActive    bool   `json:"isActive"`
}

// ShopUpdateInput dùng cho cập nhật shop.
type ShopUpdateInput struct {
	Name        string `json:"name" validate:"omitempty,no_xss"`
	Description string `json:"description" validate:"omitempty,no_xss"`
	CityID      string `json:"cityId" validate:"omitempty,objectid"`
	IsActive    bool   `json:"isActive"`
}

// ProductCreateInput dùng cho tạo sản phẩm.
type ProductCreateInput struct {
	Name            string   `json:"name" validate:"required,no_xss"`
	Description     string   `json:"description,omitempty" validate:"omitempty,no_xss"`
	ShopID          string   `json:"shopId" validate:"required,objectid"`
	PriceFiat       float64  `json:"priceFiat" validate:"required,gt=0"`
	InStock         bool     `json:"inStock"`
	ImageURL        string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	AcceptedWallets []string `json:"acceptedWallets,omitempty" validate:"omitempty,dive,objectid"`
}

// ProductUpdateInput dùng cho cập nhật sản phẩm.
type ProductUpdateInput struct {
	Name            string   `json:"name" validate:"omitempty,no_xss"`
	Description     string   `json:"description" validate:"omitempty,no_xss"`
	ShopID          string   `json:"shopId" validate:"omitempty,objectid"`
	PriceFiat       float64  `json:"priceFiat" validate:"omitempty,gt=0"`
	InStock         bool     `json:"inStock"`
	ImageURL        string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	AcceptedWallets []string `json:"acceptedWallets,omitempty" validate:"omitempty,dive,objectid"`
}

// WalletCreateInput dùng cho tạo ví thanh toán.
type WalletCreateInput struct {
	WalletName    string `json:"walletName" validate:"required,no_xss"`
	Symbol        string `json:"symbol" validate:"required,uppercase"`
	ApiID         string `json:"apiId" validate:"required,lowercase"`
	WalletAddress string `json:"walletAddress" validate:"required,no_xss"`
	IsActive      bool   `json:"isActive"`
}

// WalletUpdateInput dùng cho cập nhật ví thanh toán.
type WalletUpdateInput struct {
	WalletName    string `json:"walletName" validate:"omitempty,no_xss"`
	Symbol        string `json:"symbol" validate:"omitempty,uppercase"`
	ApiID         string `json:"apiId" validate:"omitempty,lowercase"`
	WalletAddress string `json:"walletAddress" validate:"omitempty,no_xss"`
	IsActive      bool   `json:"isActive"`
}
