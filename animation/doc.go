// Package animation turns CSS animation declarations and @keyframes blocks
// into timed steps and plays them against a View.
//
// A Group is built from the declarations of one rule with FromDeclarations
// (or a Builder), its keyframes come from KeyframesFromCSS, and Play drives
// the resulting timeline one Step at a time:
//
//	g, err := animation.FromDeclarations(rule.Declarations)
//	if err != nil || g == nil {
//		return err
//	}
//	g.Keyframes = animation.KeyframesFromCSS(sheet.KeyframesByName(g.Name))
//	done, err := g.Play(ctx, view)
//	if err != nil {
//		return err
//	}
//	return done.Wait(ctx)
//
// Steps are never run in parallel within a group; each one waits for the
// view to finish the previous step.
package animation
