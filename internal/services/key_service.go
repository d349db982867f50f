package services

import (
	"pixshield/internal/util"
	"pixshield/pkg/pixkey"
)

// KeyService classifies and masks PIX keys with the configured fallback policy.
type KeyService struct {
	classifier *pixkey.Classifier
}

func NewKeyService(classifier *pixkey.Classifier) *KeyService {
	if classifier == nil {
		classifier = pixkey.New()
	}
	return &KeyService{classifier: classifier}
}

// Classifier exposes the underlying classifier (used by the detector).
func (s *KeyService) Classifier() *pixkey.Classifier { return s.classifier }

// Classify cleans raw and classifies it.
func (s *KeyService) Classify(raw string) KeyInfo {
	return keyInfo(s.classifier.Classify(util.CleanInput(raw)))
}

// Resolve classifies raw unless override names a kind, in which case the key
// is only masked for that kind.
func (s *KeyService) Resolve(raw, override string) (KeyInfo, error) {
	if override == "" {
		return s.Classify(raw), nil
	}
	kind, err := pixkey.ParseKind(override)
	if err != nil {
		return KeyInfo{}, err
	}
	clean := util.CleanInput(raw)
	info := KeyInfo{
		Kind:     kind,
		WireName: kind.WireName(),
		Display:  pixkey.Format(clean, kind),
		Matched:  kind.Known(),
		Rule:     "override",
	}
	if kind == pixkey.Phone {
		switch len(pixkey.Digits(clean)) {
		case 11:
			info.Phone = pixkey.Mobile
		case 10:
			info.Phone = pixkey.Landline
		}
	}
	return info, nil
}

func keyInfo(res pixkey.Result) KeyInfo {
	return KeyInfo{
		Kind:     res.Kind,
		WireName: res.Kind.WireName(),
		Phone:    res.Phone,
		Display:  res.Display,
		Matched:  res.Matched,
		Rule:     res.Rule,
	}
}
