package metadomain

// AdSet é a representação bruta de um adset na API Graph
type AdSet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CampaignID  string `json:"campaign_id"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"` // em centavos, como string
	CreatedTime string `json:"created_time"` // RFC3339 com offset
}

// Campaign é a representação bruta de uma campanha na API Graph
type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

// AdCreativeRef é a referência de criativo embutida em um anúncio
type AdCreativeRef struct {
	ID string `json:"id"`
}

// Ad é a representação bruta de um anúncio na API Graph
type Ad struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Creative AdCreativeRef `json:"creative"`
}

// CreateResult é a resposta padrão de criação de entidades
type CreateResult struct {
	ID string `json:"id"`
}

// CopyResult é a resposta do endpoint de cópia de adsets
type CopyResult struct {
	CopiedAdSetID string `json:"copied_adset_id"`
	AdObjectID    string `json:"ad_object_id"`
}

// ResolvedCopyID retorna o ID do adset criado pela cópia
func (c *CopyResult) ResolvedCopyID() string {
	if c.CopiedAdSetID != "" {
		return c.CopiedAdSetID
	}
	return c.AdObjectID
}
