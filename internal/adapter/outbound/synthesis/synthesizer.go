// Package synthesis turns a structural inventory into an ordered catalogue of
// test case descriptors. Synthesis is total: an empty inventory yields an
// empty catalogue, never an error.
package synthesis

import (
	"context"
	"fmt"

	"testsmith/internal/application/common"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"
)

// Complexity thresholds for the basic descriptor's priority.
const (
	highComplexityThreshold   = 10
	mediumComplexityThreshold = 5
)

// Loop iteration counts for the normal and boundary descriptors.
const (
	loopNormalIterations   = 5
	loopBoundaryIterations = 0
)

// Synthesizer implements the TestCaseSynthesizer port.
type Synthesizer struct {
	values   outbound.ValueGenerator
	renderer outbound.TestCodeRenderer
}

// NewSynthesizer creates a synthesizer. Both collaborators are required.
func NewSynthesizer(values outbound.ValueGenerator, renderer outbound.TestCodeRenderer) *Synthesizer {
	if values == nil {
		panic("NewSynthesizer: values cannot be nil")
	}
	if renderer == nil {
		panic("NewSynthesizer: renderer cannot be nil")
	}
	return &Synthesizer{
		values:   values,
		renderer: renderer,
	}
}

// Synthesize emits descriptors for every function, class, conditional, and
// loop in the inventory, in inventory order.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	result *valueobject.AnalysisResult,
	framework string,
) ([]valueobject.TestCaseDescriptor, error) {
	if result == nil {
		return []valueobject.TestCaseDescriptor{}, nil
	}

	descriptors := make([]valueobject.TestCaseDescriptor, 0)

	for _, function := range result.Functions {
		descriptors = append(descriptors, s.functionDescriptors(function)...)
	}
	for _, class := range result.Classes {
		descriptors = append(descriptors, s.classDescriptors(class)...)
	}
	for i, conditional := range result.Conditionals {
		descriptors = append(descriptors, s.conditionalDescriptors(i, conditional)...)
	}
	for i, loop := range result.Loops {
		descriptors = append(descriptors, s.loopDescriptors(i, loop)...)
	}

	for i := range descriptors {
		descriptors[i].Status = valueobject.TestStatusGenerated
		code, err := s.renderer.Render(ctx, descriptors[i], result.LanguageName, framework)
		if err != nil {
			return nil, common.WrapServiceError(common.OpRenderTestCode, err)
		}
		descriptors[i].RenderedCode = code
	}

	slogger.Debug(ctx, "test case synthesis completed", slogger.Fields{
		"descriptors": len(descriptors),
		"functions":   len(result.Functions),
		"classes":     len(result.Classes),
	})

	return descriptors, nil
}

func (s *Synthesizer) functionDescriptors(fn valueobject.FunctionInfo) []valueobject.TestCaseDescriptor {
	descriptors := make([]valueobject.TestCaseDescriptor, 0, 2+2*len(fn.Parameters))
	shape := outputShape(fn.Name)

	descriptors = append(descriptors, valueobject.TestCaseDescriptor{
		OwnerName:      fn.Name,
		Kind:           valueobject.TestKindUnit,
		Description:    fmt.Sprintf("%s handles a basic invocation", fn.Name),
		InputData:      s.sampleInputs(fn.Parameters),
		ExpectedOutput: shape,
		Priority:       basicPriority(fn.LocalComplexity),
	})

	for i, param := range fn.Parameters {
		valid := s.sampleInputs(fn.Parameters)
		valid[param.Name] = s.values.QualityValueFor(param.Name)
		descriptors = append(descriptors, valueobject.TestCaseDescriptor{
			OwnerName:      fn.Name,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s accepts a valid %s", fn.Name, param.Name),
			InputData:      valid,
			ExpectedOutput: shape,
			Priority:       valueobject.TestPriorityMedium,
		})

		invalid := s.sampleInputs(fn.Parameters)
		invalid[param.Name] = s.values.InvalidValueAt(i)
		descriptors = append(descriptors, valueobject.TestCaseDescriptor{
			OwnerName:      fn.Name,
			Kind:           valueobject.TestKindEdgeCase,
			Description:    fmt.Sprintf("%s rejects an invalid %s", fn.Name, param.Name),
			InputData:      invalid,
			ExpectedOutput: expectedError,
			Priority:       valueobject.TestPriorityHigh,
		})
	}

	if len(fn.Parameters) > 0 {
		descriptors = append(descriptors, valueobject.TestCaseDescriptor{
			OwnerName:      fn.Name,
			Kind:           valueobject.TestKindNegative,
			Description:    fmt.Sprintf("%s handles null and undefined arguments", fn.Name),
			InputData:      nullInputs(fn.Parameters),
			ExpectedOutput: expectedError,
			Priority:       valueobject.TestPriorityHigh,
		})
	}

	if fn.IsAsync {
		descriptors = append(descriptors, valueobject.TestCaseDescriptor{
			OwnerName:      fn.Name,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s resolves asynchronously", fn.Name),
			InputData:      s.sampleInputs(fn.Parameters),
			ExpectedOutput: resolvesShape(shape),
			Priority:       basicPriority(fn.LocalComplexity),
		})
	}

	return descriptors
}

func (s *Synthesizer) classDescriptors(class valueobject.ClassInfo) []valueobject.TestCaseDescriptor {
	methods := class.NonConstructorMethods()
	descriptors := make([]valueobject.TestCaseDescriptor, 0, 1+len(methods))

	descriptors = append(descriptors, valueobject.TestCaseDescriptor{
		OwnerName:      class.Name,
		Kind:           valueobject.TestKindUnit,
		Description:    fmt.Sprintf("%s can be instantiated", class.Name),
		InputData:      map[string]any{},
		ExpectedOutput: "instance",
		Priority:       valueobject.TestPriorityHigh,
	})

	for _, method := range methods {
		shape := outputShape(method.Name)
		if method.IsAsync {
			shape = resolvesShape(shape)
		}
		descriptors = append(descriptors, valueobject.TestCaseDescriptor{
			OwnerName:      class.Name + "." + method.Name,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s.%s behaves as expected", class.Name, method.Name),
			InputData:      map[string]any{},
			ExpectedOutput: shape,
			Priority:       valueobject.TestPriorityMedium,
		})
	}

	return descriptors
}

func (s *Synthesizer) conditionalDescriptors(
	index int,
	conditional valueobject.ConditionalInfo,
) []valueobject.TestCaseDescriptor {
	owner := fmt.Sprintf("conditional_%d", index)
	return []valueobject.TestCaseDescriptor{
		{
			OwnerName:      owner,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s branch at line %d takes the true path", conditional.Kind, conditional.SourceLine),
			InputData:      map[string]any{"condition": true},
			ExpectedOutput: "branch-taken",
			Priority:       valueobject.TestPriorityMedium,
		},
		{
			OwnerName:      owner,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s branch at line %d takes the false path", conditional.Kind, conditional.SourceLine),
			InputData:      map[string]any{"condition": false},
			ExpectedOutput: "branch-skipped",
			Priority:       valueobject.TestPriorityMedium,
		},
	}
}

func (s *Synthesizer) loopDescriptors(
	index int,
	loop valueobject.LoopInfo,
) []valueobject.TestCaseDescriptor {
	owner := fmt.Sprintf("loop_%d", index)
	return []valueobject.TestCaseDescriptor{
		{
			OwnerName:      owner,
			Kind:           valueobject.TestKindUnit,
			Description:    fmt.Sprintf("%s loop at line %d iterates normally", loop.Kind, loop.SourceLine),
			InputData:      map[string]any{"iterations": loopNormalIterations},
			ExpectedOutput: "completes",
			Priority:       valueobject.TestPriorityMedium,
		},
		{
			OwnerName:      owner,
			Kind:           valueobject.TestKindEdgeCase,
			Description:    fmt.Sprintf("%s loop at line %d handles zero iterations", loop.Kind, loop.SourceLine),
			InputData:      map[string]any{"iterations": loopBoundaryIterations},
			ExpectedOutput: "completes",
			Priority:       valueobject.TestPriorityMedium,
		},
	}
}

// sampleInputs builds one input value per parameter.
func (s *Synthesizer) sampleInputs(params []valueobject.ParameterInfo) map[string]any {
	inputs := make(map[string]any, len(params))
	for _, param := range params {
		inputs[param.Name] = s.values.ValueFor(param.Name)
	}
	return inputs
}

// nullInputs sets every parameter to null or undefined by alternating on the
// parameter position, keeping the catalogue reproducible run to run.
func nullInputs(params []valueobject.ParameterInfo) map[string]any {
	inputs := make(map[string]any, len(params))
	for i, param := range params {
		if i%2 == 0 {
			inputs[param.Name] = nil
		} else {
			inputs[param.Name] = valueobject.UndefinedValue{}
		}
	}
	return inputs
}

func basicPriority(localComplexity int) valueobject.TestPriority {
	switch {
	case localComplexity >= highComplexityThreshold:
		return valueobject.TestPriorityHigh
	case localComplexity >= mediumComplexityThreshold:
		return valueobject.TestPriorityMedium
	default:
		return valueobject.TestPriorityLow
	}
}
