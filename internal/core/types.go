package core

import "msexperiment/pkg/experiment"

type (
	Experiment      = experiment.Experiment
	NamedExperiment = experiment.NamedExperiment
	LinkRequest     = experiment.LinkRequest
	Link            = experiment.Link
	LinkMatrix      = experiment.LinkMatrix
	Address         = experiment.Address
	Transaction     = experiment.Transaction
	TransactionView = experiment.TransactionView
	PersistentStore = experiment.PersistentStore
)
