package domain

// CreativeAsset é uma peça de conteúdo reutilizável do catálogo da conta.
// Mantém uma referência de criativo na plataforma por objetivo suportado.
type CreativeAsset struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	Priority  int    `json:"priority"`

	// RefsByObjective mapeia objetivo de campanha -> creative_id na plataforma
	RefsByObjective map[string]string `json:"refs_by_objective"`
}

// IsUsed verifica se alguma das referências do asset está ativa na
// plataforma. Basta uma referência ativa para o asset contar como em uso;
// ele só é "não utilizado" quando nenhuma referência está ativa.
func (c *CreativeAsset) IsUsed(activeRefs map[string]struct{}) bool {
	for _, ref := range c.RefsByObjective {
		if _, ok := activeRefs[ref]; ok {
			return true
		}
	}
	return false
}
