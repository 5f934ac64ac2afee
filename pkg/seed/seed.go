// Package seed holds the built-in checklist collection used when no
// saved state exists or a saved record cannot be read.
package seed

import "github.com/aeroclub-poitou/preflight/pkg/checklist"

// Collection returns a fresh copy of the default state. Ids are stable
// across calls so that persisted check state written against the seed
// keeps resolving after an upgrade.
func Collection() checklist.Collection {
	return checklist.Collection{
		Checklists: []checklist.Checklist{
			cessna("c150-bubk", "F-BUBK", "https://www.aero-club-poitou.fr/avions/f-bubk"),
			cessna("c152-giya", "F-GIYA", "https://www.aero-club-poitou.fr/avions/f-giya"),
			dr400(),
			evektor("ev97-hnny", "F-HNNY"),
			evektor("ev97-hppl", "F-HPPL"),
		},
		Links: []checklist.Link{
			{ID: "link-1", Title: "OpenFlyers", URL: "https://openflyers.com/acp/"},
			{ID: "link-2", Title: "Le Coin des Pilotes", URL: "https://www.aero-club-poitou.fr/acp/coin-des-pilotes"},
		},
	}
}

func cessna(id, tail, url string) checklist.Checklist {
	return checklist.Checklist{
		ID:    id,
		Title: tail,
		Aircraft: []checklist.Aircraft{
			{ID: id + "-ac", Name: tail, URL: url},
		},
		Sections: []checklist.Section{
			{
				ID: id + "-prevol", Title: "VISITE PRÉVOL", DefaultChecked: true,
				Items: []checklist.Item{
					{ID: id + "-prevol-1", Label: "Documentation avion", Action: "À BORD"},
					{ID: id + "-prevol-2", Label: "Niveau huile", Action: "VÉRIFIÉ"},
					{ID: id + "-prevol-3", Label: "Purge carburant", Action: "EFFECTUÉE"},
				},
			},
			{
				ID: id + "-avant", Title: "AVANT MISE EN ROUTE",
				Items: []checklist.Item{
					{ID: id + "-avant-1", Label: "Frein de parc", Action: "SERRÉ"},
					{ID: id + "-avant-2", Label: "Ceintures", Action: "ATTACHÉES"},
					{ID: id + "-avant-3", Label: "Robinet carburant", Action: "OUVERT", Critical: true},
				},
			},
			{
				ID: id + "-demarrage", Title: "MISE EN ROUTE",
				Items: []checklist.Item{
					{ID: id + "-demarrage-1", Label: "Batterie / Alternateur", Action: "ON"},
					{ID: id + "-demarrage-2", Label: "Hélice", Action: "ZONE DÉGAGÉE", Critical: true},
					{ID: id + "-demarrage-3", Label: "Démarreur", Action: "ACTIONNÉ"},
					{ID: id + "-demarrage-4", Label: "Pression huile", Action: "VÉRIFIÉE"},
				},
			},
			{
				ID: id + "-decollage", Title: "AVANT DÉCOLLAGE",
				Items: []checklist.Item{
					{ID: id + "-decollage-1", Label: "Commandes", Action: "LIBRES"},
					{ID: id + "-decollage-2", Label: "Volets", Action: "DÉCOLLAGE"},
					{ID: id + "-decollage-3", Label: "Transpondeur", Action: "ALT"},
				},
			},
			{
				ID: id + "-urgences", Title: "URGENCES - PANNE MOTEUR",
				Items: []checklist.Item{
					{ID: id + "-urgences-1", Label: "Vitesse plané", Action: "AFFICHÉE", Critical: true},
					{ID: id + "-urgences-2", Label: "Terrain", Action: "CHOISI", Critical: true},
					{ID: id + "-urgences-3", Label: "Transpondeur", Action: "7700"},
				},
			},
		},
		Notes: "",
	}
}

func dr400() checklist.Checklist {
	const id = "dr400-1"
	return checklist.Checklist{
		ID:    id,
		Title: "DR400",
		Aircraft: []checklist.Aircraft{
			{ID: id + "-ac1", Name: "F-GLVX", URL: "https://www.aero-club-poitou.fr/avions/f-glvx"},
			{ID: id + "-ac2", Name: "F-GKQA", URL: "https://www.aero-club-poitou.fr/avions/f-gkqa"},
		},
		Sections: []checklist.Section{
			{
				ID: id + "-prevol", Title: "VISITE PRÉVOL", DefaultChecked: true,
				Items: []checklist.Item{
					{ID: id + "-prevol-1", Label: "Verrière", Action: "PROPRE, VERROUILLÉE"},
					{ID: id + "-prevol-2", Label: "Essence", Action: "QUANTITÉ VÉRIFIÉE"},
				},
			},
			{
				ID: id + "-roulage", Title: "ROULAGE",
				Items: []checklist.Item{
					{ID: id + "-roulage-1", Label: "Freins", Action: "ESSAYÉS"},
					{ID: id + "-roulage-2", Label: "Instruments gyro", Action: "VÉRIFIÉS"},
				},
			},
			{
				ID: id + "-detresse", Title: "DETRESSE - FEU MOTEUR",
				Items: []checklist.Item{
					{ID: id + "-detresse-1", Label: "Robinet essence", Action: "FERMÉ", Critical: true},
					{ID: id + "-detresse-2", Label: "Plein gaz", Action: "JUSQU'À ARRÊT MOTEUR", Critical: true},
					{ID: id + "-detresse-3", Label: "Contacts", Action: "COUPÉS", Critical: true},
				},
			},
		},
	}
}

func evektor(id, tail string) checklist.Checklist {
	return checklist.Checklist{
		ID:    id,
		Title: tail,
		Aircraft: []checklist.Aircraft{
			{ID: id + "-ac", Name: tail},
		},
		Sections: []checklist.Section{
			{
				ID: id + "-avant", Title: "AVANT MISE EN ROUTE",
				Items: []checklist.Item{
					{ID: id + "-avant-1", Label: "Coupe-feu", Action: "OUVERT"},
					{ID: id + "-avant-2", Label: "Parachute de cellule", Action: "GOUPILLE RETIRÉE", Critical: true},
				},
			},
			{
				ID: id + "-piste", Title: "ALIGNEMENT",
				Items: []checklist.Item{
					{ID: id + "-piste-1", Label: "Volets", Action: "15°"},
					{ID: id + "-piste-2", Label: "Pompe électrique", Action: "ON"},
				},
			},
		},
	}
}
