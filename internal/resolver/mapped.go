package resolver

import (
	"context"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// mappedResolver handles two shapes the checker leaves without declared
// properties:
//
//   - index-signature objects ({ [key: string]: V }): expanded into an
//     Object carrying just the signature, which tells the generator to emit
//     a dynamic-key setter instead of per-property setters;
//   - mapped types not yet instantiated (the source type is an open
//     generic): surfaced opaquely as Generic so the generator treats the
//     declared name as a parameter.
//
// Mapped types the checker already instantiated have concrete properties and
// pass through to object classification.
type mappedResolver struct{}

func (mappedResolver) name() string { return "mapped" }

func (mappedResolver) tryResolve(ctx context.Context, t descriptor.Type, rc *resolveContext) (*typeinfo.TypeInfo, error) {
	if t.Flags()&descriptor.FlagsObject == 0 {
		return nil, nil
	}
	if len(t.Properties()) > 0 {
		return nil, nil
	}

	if infos := t.IndexInfos(); len(infos) > 0 {
		info := infos[0]
		valueType, err := rc.resolve(ctx, info.ValueType(), rc.depth+1)
		if err != nil {
			return nil, err
		}
		result := typeinfo.TypeInfo{
			Kind:       typeinfo.KindObject,
			Properties: []typeinfo.PropertyInfo{},
			IndexSignature: &typeinfo.IndexSignature{
				KeyType:   info.KeyType(),
				ValueType: valueType,
				Readonly:  info.Readonly(),
			},
		}
		return &result, nil
	}

	objFlags := t.ObjectFlags()
	if objFlags&descriptor.ObjectFlagsMapped == 0 || objFlags&descriptor.ObjectFlagsInstantiated != 0 {
		return nil, nil
	}

	sym := t.Symbol()
	if sym == nil || descriptor.IsAnonymousName(sym.Name) {
		return nil, nil
	}
	if !looksGeneric(normalizeTypeText(t.Text())) {
		return nil, nil
	}

	result := typeinfo.Generic(sym.Name)
	return &result, nil
}
