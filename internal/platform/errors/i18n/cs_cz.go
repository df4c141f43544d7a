package i18n

var csCZMessages = map[Code]string{
	CodeRollMissingResults:       "Je potřeba alespoň jeden hod na úspěch.",
	CodeRollInvalidResultType:    "Spojit lze jen jednoduché hody na úspěch, dostal jsem {{.type}}.",
	CodeRollDuplicateDifficulty:  "Každá obtížnost musí být jedinečná, dostal jsem {{.difficulties}}.",
	CodeRollDuplicateSuccessCode: "Každý kód úspěchu musí být jedinečný, dostal jsem {{.codes}}.",
	CodeRollInconsistentQuality:  "Všechny hody na úspěch musí sdílet stejný hod na kvalitu, dostal jsem {{.first}} a {{.second}}.",
	CodeDiceInvalidSequence:      "Hozená čísla {{.numbers}} nejsou platným hodem 2k6+.",
	CodeTierTableInvalid:         "Tabulka obtížností je neplatná: {{.reason}}.",
}
