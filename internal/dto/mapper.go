package dto

import "github.com/simaogato/investfolio-backend/internal/domain"

// Mapper converts between an entity and its transfer object
type Mapper[E any, D any] struct {
	ToDTO    func(E) D
	ToEntity func(D) E
}

var (
	AssetTypeMapper           = Mapper[domain.AssetType, AssetTypeDTO]{ToDTO: AssetTypeToDTO, ToEntity: AssetTypeFromDTO}
	AssetMapper               = Mapper[domain.Asset, AssetDTO]{ToDTO: AssetToDTO, ToEntity: AssetFromDTO}
	AssetHistoryMapper        = Mapper[domain.AssetHistory, AssetHistoryDTO]{ToDTO: AssetHistoryToDTO, ToEntity: AssetHistoryFromDTO}
	InvestmentPortfolioMapper = Mapper[domain.InvestmentPortfolio, InvestmentPortfolioDTO]{ToDTO: InvestmentPortfolioToDTO, ToEntity: InvestmentPortfolioFromDTO}
	InvestmentAssetsMapper    = Mapper[domain.InvestmentAssets, InvestmentAssetsDTO]{ToDTO: InvestmentAssetsToDTO, ToEntity: InvestmentAssetsFromDTO}
)

// MapAll applies fn to every element, always returning a non-nil slice
func MapAll[E any, D any](items []E, fn func(E) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// AssetTypeToDTO maps the type and any loaded assets. Nested assets are
// mapped without their own relations.
func AssetTypeToDTO(e domain.AssetType) AssetTypeDTO {
	d := assetTypeScalars(e)
	if len(e.Assets) > 0 {
		d.Assets = MapAll(e.Assets, assetScalars)
	}
	return d
}

func AssetTypeFromDTO(d AssetTypeDTO) domain.AssetType {
	return domain.AssetType{ID: d.ID, Name: d.Name, Description: d.Description}
}

func AssetToDTO(e domain.Asset) AssetDTO {
	d := assetScalars(e)
	if e.AssetType != nil {
		at := assetTypeScalars(*e.AssetType)
		d.AssetType = &at
	}
	if len(e.AssetHistories) > 0 {
		d.AssetHistories = MapAll(e.AssetHistories, assetHistoryScalars)
	}
	return d
}

func AssetFromDTO(d AssetDTO) domain.Asset {
	return domain.Asset{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Symbol:      d.Symbol,
		AssetTypeID: d.AssetTypeID,
	}
}

// AssetToPortfolioDTO projects an asset loaded with its type and history
func AssetToPortfolioDTO(e domain.Asset) AssetForPortfolioDTO {
	d := AssetForPortfolioDTO{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Symbol:       e.Symbol,
		AssetTypeID:  e.AssetTypeID,
		CurrentValue: e.CurrentValue(),
	}
	if e.AssetType != nil {
		d.AssetTypeName = e.AssetType.Name
	}
	return d
}

func AssetHistoryToDTO(e domain.AssetHistory) AssetHistoryDTO {
	d := assetHistoryScalars(e)
	if e.Asset != nil {
		a := assetScalars(*e.Asset)
		d.Asset = &a
	}
	return d
}

func AssetHistoryFromDTO(d AssetHistoryDTO) domain.AssetHistory {
	return domain.AssetHistory{
		ID:               d.ID,
		AssetID:          d.AssetID,
		HistoryValueDate: d.HistoryValueDate,
		Value:            d.Value,
	}
}

func InvestmentPortfolioToDTO(e domain.InvestmentPortfolio) InvestmentPortfolioDTO {
	return InvestmentPortfolioDTO{ID: e.ID, Name: e.Name, Description: e.Description, UserID: e.UserID}
}

func InvestmentPortfolioFromDTO(d InvestmentPortfolioDTO) domain.InvestmentPortfolio {
	return domain.InvestmentPortfolio{ID: d.ID, Name: d.Name, Description: d.Description, UserID: d.UserID}
}

func InvestmentAssetsToDTO(e domain.InvestmentAssets) InvestmentAssetsDTO {
	d := InvestmentAssetsDTO{
		ID:                    e.ID,
		AssetID:               e.AssetID,
		InvestmentPortfolioID: e.InvestmentPortfolioID,
	}
	if e.Asset != nil {
		a := assetScalars(*e.Asset)
		d.Asset = &a
	}
	if e.InvestmentPortfolio != nil {
		p := InvestmentPortfolioToDTO(*e.InvestmentPortfolio)
		d.InvestmentPortfolio = &p
	}
	return d
}

func InvestmentAssetsFromDTO(d InvestmentAssetsDTO) domain.InvestmentAssets {
	return domain.InvestmentAssets{
		ID:                    d.ID,
		AssetID:               d.AssetID,
		InvestmentPortfolioID: d.InvestmentPortfolioID,
	}
}

// LoginResponseFromUser fills the account fields of a successful login
func LoginResponseFromUser(u domain.AppUser, roles []string) LoginResponseDTO {
	if roles == nil {
		roles = []string{}
	}
	return LoginResponseDTO{
		ID:         u.ID,
		Email:      u.Email,
		UserName:   u.UserName,
		Name:       u.Name,
		LastName:   u.LastName,
		IsVerified: u.EmailConfirmed,
		Roles:      roles,
		Errors:     []string{},
	}
}

func assetTypeScalars(e domain.AssetType) AssetTypeDTO {
	return AssetTypeDTO{ID: e.ID, Name: e.Name, Description: e.Description}
}

func assetScalars(e domain.Asset) AssetDTO {
	return AssetDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Symbol:      e.Symbol,
		AssetTypeID: e.AssetTypeID,
	}
}

func assetHistoryScalars(e domain.AssetHistory) AssetHistoryDTO {
	return AssetHistoryDTO{
		ID:               e.ID,
		AssetID:          e.AssetID,
		HistoryValueDate: e.HistoryValueDate,
		Value:            e.Value,
	}
}
