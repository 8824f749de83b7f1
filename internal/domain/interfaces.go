package domain

// DocumentStore persists the project document.
type DocumentStore interface {
	LoadDocument() (Document, error)
	SaveDocument(doc Document) error
}

// CurveStore is the curve library shared between projects.
type CurveStore interface {
	LoadLibrary() (CurveLibrary, error)
	SaveModel(m PumpCurveModel) error
	DeleteModel(id string) error
}
