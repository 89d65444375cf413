package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Tree rule validation utilities.
// A validator reports what it has found broken, it never fixes anything.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

var (
	ErrOrderViolation      = errors.New("[tree] order violation")
	ErrParentLinkViolation = errors.New("[tree] parent link violation")
	ErrBalanceViolation    = errors.New("[avl] balance violation")
	ErrRedViolation        = errors.New("[rbtree] red violation")
	ErrBlackViolation      = errors.New("[rbtree] black violation")
	ErrRootColorViolation  = errors.New("[rbtree] root color violation")
)

// OrderViolationValidate checks that the in-order keys are strictly
// ascending and that their number is the one reported by Len.
func OrderViolationValidate[K infra.OrderedKey](tree BST[K]) error {
	var (
		prev  K
		count int64
	)
	for key := range tree.All() {
		if count > 0 && key <= prev {
			return fmt.Errorf("%w: key %v follows %v", ErrOrderViolation, key, prev)
		}
		prev = key
		count++
	}
	if count != tree.Len() {
		return fmt.Errorf("%w: %d keys reached but the length is %d", ErrOrderViolation, count, tree.Len())
	}
	return nil
}

// ParentLinkValidate checks that the root has no parent and that every
// child links back to the node it hangs from.
func ParentLinkValidate[K infra.OrderedKey](root BSTNode[K]) error {
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return fmt.Errorf("%w: root %v has the parent %v", ErrParentLinkViolation, root.Key(), root.Parent().Key())
	}

	queue := []BSTNode[K]{root}
	for len(queue) > 0 {
		aux := queue[0]
		queue = queue[1:]
		for _, child := range []BSTNode[K]{aux.Left(), aux.Right()} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return fmt.Errorf("%w: node %v does not link back to %v", ErrParentLinkViolation, child.Key(), aux.Key())
			}
			queue = append(queue, child)
		}
	}
	return nil
}

// BalanceViolationValidate recomputes the heights bottom-up and compares
// them with the cached ones and the balance bound.
func BalanceViolationValidate[K infra.OrderedKey](tree AVLTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	_, err := avlHeightOf[K](root)
	return err
}

func avlHeightOf[K infra.OrderedKey](n BSTNode[K]) (int, error) {
	if n == nil {
		return 0, nil
	}
	lh, err := avlHeightOf[K](n.Left())
	if err != nil {
		return 0, err
	}
	rh, err := avlHeightOf[K](n.Right())
	if err != nil {
		return 0, err
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, fmt.Errorf("%w: node %v has the subtree heights %d and %d", ErrBalanceViolation, n.Key(), lh, rh)
	}
	h := 1 + max(lh, rh)
	if an, ok := n.(AVLNode[K]); ok && an.Height() != h {
		return 0, fmt.Errorf("%w: node %v caches the height %d but has %d", ErrBalanceViolation, n.Key(), an.Height(), h)
	}
	return h, nil
}

func RootColorValidate[K infra.OrderedKey](tree RBTree[K]) error {
	if root := tree.Root(); root != nil && root.Color() != Black {
		return fmt.Errorf("%w: root %v is %s", ErrRootColorViolation, root.Key(), root.Color())
	}
	return nil
}

func isRedView[K infra.OrderedKey](n BSTNode[K]) bool {
	if n == nil {
		return false
	}
	rn, ok := n.(RBNode[K])
	return ok && rn.Color() == Red
}

// RedViolationValidate checks that no red node has a red child.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	stack := []BSTNode[K]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l, r := aux.Left(), aux.Right()
		if isRedView[K](aux) && (isRedView[K](l) || isRedView[K](r)) {
			return fmt.Errorf("%w: red node %v has a red child", ErrRedViolation, aux.Key())
		}
		if l != nil {
			stack = append(stack, l)
		}
		if r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each path from the root down to a nil leaf passes the same number
of black nodes, which has to be the reported black height.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	bh, err := blackHeightOf[K](root)
	if err != nil {
		return err
	}
	if bh != tree.BlackHeight() {
		return fmt.Errorf("%w: black height %d is reported as %d", ErrBlackViolation, bh, tree.BlackHeight())
	}
	return nil
}

func blackHeightOf[K infra.OrderedKey](n BSTNode[K]) (int, error) {
	if n == nil {
		return 0, nil
	}
	lbh, err := blackHeightOf[K](n.Left())
	if err != nil {
		return 0, err
	}
	rbh, err := blackHeightOf[K](n.Right())
	if err != nil {
		return 0, err
	}
	if lbh != rbh {
		return 0, fmt.Errorf("%w: node %v has the black heights %d and %d", ErrBlackViolation, n.Key(), lbh, rbh)
	}
	if isRedView[K](n) {
		return lbh, nil
	}
	return lbh + 1, nil
}

func AVLTreeValidate[K infra.OrderedKey](tree AVLTree[K]) error {
	return multierr.Combine(
		OrderViolationValidate[K](tree),
		ParentLinkValidate[K](tree.Root()),
		BalanceViolationValidate[K](tree),
	)
}

func RBTreeValidate[K infra.OrderedKey](tree RBTree[K]) error {
	return multierr.Combine(
		OrderViolationValidate[K](tree),
		ParentLinkValidate[K](tree.Root()),
		RootColorValidate[K](tree),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
	)
}

// Validate runs every check that applies to the variant of tree, a
// synchronized tree is checked as the variant it wraps.
func Validate[K infra.OrderedKey](tree BST[K]) error {
	switch tr := tree.(type) {
	case *syncTree[K]:
		return tr.validate()
	case AVLTree[K]:
		return AVLTreeValidate[K](tr)
	case RBTree[K]:
		return RBTreeValidate[K](tr)
	case PlainTree[K]:
		return multierr.Combine(OrderViolationValidate[K](tr), ParentLinkValidate[K](tr.Root()))
	case SplayTree[K]:
		return multierr.Combine(OrderViolationValidate[K](tr), ParentLinkValidate[K](tr.Root()))
	default:
	}
	return OrderViolationValidate[K](tree)
}
